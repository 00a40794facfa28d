// Package util holds small parsing helpers shared by configuration and middleware.
package util

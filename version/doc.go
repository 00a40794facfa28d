// Package version exposes build information set through -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/audioscribe/version.Version=1.0.0" ./cmd/audioscribe
package version

package prompt

import "fmt"

const markdownRequest = "Please return the content formatted in Markdown."

// NonMedicalNotice is the block the model is told to return when a
// doctor-summary transcript is not a medical conversation.
const NonMedicalNotice = "## Non-medical audio\n- This audio does not appear to be a medical conversation."

const doctorTemplate = `Medical conversation transcript:
%s

Please produce two summaries in Markdown format:

1. A detailed summary for the doctor with the following sections:
   - Reason for visit
   - Symptoms
   - Diagnosis or prescriptions
   - Instructions and recommendations

2. A simple summary for the patient that is short and easy to understand.

If the text has nothing to do with a medical setting, return exactly:
%s

` + markdownRequest + "\n"

// Outcome is the result of Select: either a prompt for the summarizer or a
// passthrough of the raw transcript.
type Outcome struct {
	text        string
	passthrough bool
}

// Passthrough is the outcome for unrecognized categories.
var Passthrough = Outcome{passthrough: true}

// Prompt wraps text as a summarization prompt.
func Prompt(text string) Outcome { return Outcome{text: text} }

// IsPassthrough reports whether the transcript should be returned unchanged.
func (o Outcome) IsPassthrough() bool { return o.passthrough }

// Text returns the prompt. It is empty for Passthrough.
func (o Outcome) Text() string { return o.text }

// Select builds the prompt for category. userInstruction is only consulted
// for Other; it may be empty.
func Select(category Category, transcript, userInstruction string) Outcome {
	switch category {
	case DoctorSummary:
		return Prompt(fmt.Sprintf(doctorTemplate, transcript, NonMedicalNotice))
	case Other:
		return Prompt("About the following text, which is the transcription of an audio recording: " +
			transcript +
			". Do what this user-written instruction asks, based on the audio: " +
			userInstruction +
			". " + markdownRequest)
	case SpeakerIdentification:
		return Prompt("Identify the speakers in this audio and give me the whole conversation separated by speaker: " +
			transcript + ". " + markdownRequest)
	case SpeakerSummary:
		return Prompt("Give me a summary of what each speaker says in this audio: " +
			transcript + ". " + markdownRequest)
	case BasicSummary:
		return Prompt("Give me a basic summary of this text without losing important details: " +
			transcript + ". " + markdownRequest)
	case Unrecognized:
		return Passthrough
	}
	return Passthrough
}

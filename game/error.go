package game

const (
	ErrorInvalidSettings     = "invalid settings: %s"
	ErrorSettingsDecode      = "unable to decode settings %s: %v"
	ErrorSettingsEncode      = "unable to encode settings: %v"
	ErrorScenarioDecode      = "unable to decode scenario %s: %v"
	ErrorScenarioInvalid     = "invalid scenario %s: %s"
	ErrorScenarioNotFound    = "scenario %q not found"
	ErrorRecordingVersion    = "recording version %q is not supported (expected %q)"
	ErrorRecordingTruncated  = "recording truncated at frame %d: %v"
	ErrorRecordingMismatch   = "recording diverged at tick %d: expected digest %x, got %x"
	ErrorRecordingScenario   = "recording is of scenario %q, got a run of %q"
	ErrorRecordingNoOverlap  = "recordings share no ticks (%d and %d frames)"
	ErrorDuplicateCharacter  = "character %q is already registered"
	ErrorUnknownCharacter    = "character %q is not registered"
	ErrorReentrantTransition = "state transition %s -> %s started while %s -> %s is in progress"
	ErrorCharacterTickPanic  = "panic while ticking character %q: %v"
	ErrorWatcherUnavailable  = "unable to watch %s: %v"
)

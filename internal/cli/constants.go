package cli

// Default values for CLI flags and configurations.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// ShortChecksumLength is how many checksum characters bless summaries show.
	ShortChecksumLength = 12
)

package config

// Options holds the process-wide compiler switches. Unlike the charmap
// selection above, these are not truly global: the CLI driver builds one
// Options value per run and threads it through the pipeline explicitly,
// but it lives here because it is, like the charmap, an ambient setting
// rather than part of the ScriptModel produced by any one phase.
type Options struct {
	// StrictUnknownFlags upgrades the "unknown [Options] directive"
	// warning to a fatal diagnostic. Unknown directives in [Level]/[Title]
	// sections stay non-fatal warnings either way.
	// Off by default: see spec open question in DESIGN.md.
	StrictUnknownFlags bool

	// EncryptHeader enables the first-64-byte scramble+XOR pass on the
	// finished script.dat (spec §4.7).
	EncryptHeader bool

	// PRNGSeed seeds the security-chunk generator. Two compiles with the
	// same inputs and the same seed must be byte-identical (spec P1).
	PRNGSeed int64

	// Verbose switches the driver between concise and verbose logging.
	Verbose bool
}

func DefaultOptions() Options {
	return Options{
		StrictUnknownFlags: false,
		EncryptHeader:      false,
		PRNGSeed:           1,
		Verbose:            false,
	}
}

package dendec

// encodeConfig holds configuration for one encode call.
type encodeConfig struct {
	groupSize int
}

// EncodeOption configures an encode call.
type EncodeOption func(*encodeConfig)

// WithGroupSize formats the output in space-separated groups of n
// symbols, for readability. Zero, the default, emits one continuous
// run. Grouping is purely presentational: Decode strips all whitespace
// before processing, so grouped and ungrouped strings are
// interchangeable inputs.
func WithGroupSize(n int) EncodeOption {
	return func(c *encodeConfig) {
		c.groupSize = n
	}
}

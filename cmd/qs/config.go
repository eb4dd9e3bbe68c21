package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.codecgarden.dev/qs"
	"go.codecgarden.dev/qs/internal/percent"
)

// DecodeFlags holds CLI flag names for decode configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewDecodeConfig].
type DecodeFlags struct {
	Delimiter                string
	Depth                    string
	ListLimit                string
	ParameterLimit           string
	ParseLists               string
	AllowDots                string
	DecodeDotInKeys          string
	AllowEmptyLists          string
	Latin1                   string
	CharsetSentinel          string
	InterpretNumericEntities string
	Comma                    string
	StrictNullHandling       string
	StrictDepth              string
	RaiseOnLimitExceeded     string
	IgnoreQueryPrefix        string
}

// NewDecodeConfig creates a new [DecodeConfig] embedding these flag names.
func (f DecodeFlags) NewDecodeConfig() *DecodeConfig {
	return &DecodeConfig{Flags: f}
}

// DecodeConfig holds CLI flag values bridging to [qs.DecodeOption]s.
//
// Create instances with [NewDecodeConfig] and register CLI flags with
// [DecodeConfig.RegisterFlags]. Use [DecodeConfig.Options] to build the
// option slice passed to [qs.Decode].
type DecodeConfig struct {
	Flags DecodeFlags

	Delimiter                string
	Depth                    int
	ListLimit                int
	ParameterLimit           int
	ParseLists               bool
	AllowDots                bool
	DecodeDotInKeys          bool
	AllowEmptyLists          bool
	Latin1                   bool
	CharsetSentinel          bool
	InterpretNumericEntities bool
	Comma                    bool
	StrictNullHandling       bool
	StrictDepth              bool
	RaiseOnLimitExceeded     bool
	IgnoreQueryPrefix        bool
}

// NewDecodeConfig returns a new [DecodeConfig] with default flag names.
func NewDecodeConfig() *DecodeConfig {
	f := DecodeFlags{
		Delimiter:                "delimiter",
		Depth:                    "depth",
		ListLimit:                "list-limit",
		ParameterLimit:           "parameter-limit",
		ParseLists:               "parse-lists",
		AllowDots:                "allow-dots",
		DecodeDotInKeys:          "decode-dot-in-keys",
		AllowEmptyLists:          "allow-empty-lists",
		Latin1:                   "latin1",
		CharsetSentinel:          "charset-sentinel",
		InterpretNumericEntities: "interpret-numeric-entities",
		Comma:                    "comma",
		StrictNullHandling:       "strict-null-handling",
		StrictDepth:              "strict-depth",
		RaiseOnLimitExceeded:     "raise-on-limit-exceeded",
		IgnoreQueryPrefix:        "ignore-query-prefix",
	}

	return f.NewDecodeConfig()
}

// RegisterFlags adds decode flags to the given [*pflag.FlagSet].
func (c *DecodeConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Delimiter, c.Flags.Delimiter, "&", "pair delimiter")
	flags.IntVar(&c.Depth, c.Flags.Depth, 5, "maximum bracket nesting depth")
	flags.IntVar(&c.ListLimit, c.Flags.ListLimit, 20, "maximum sequence index before falling back to a mapping")
	flags.IntVar(&c.ParameterLimit, c.Flags.ParameterLimit, 1000, "maximum number of pairs to parse")
	flags.BoolVar(&c.ParseLists, c.Flags.ParseLists, true, "interpret bracket keys as sequences")
	flags.BoolVar(&c.AllowDots, c.Flags.AllowDots, false, "interpret dots in keys as nesting")
	flags.BoolVar(&c.DecodeDotInKeys, c.Flags.DecodeDotInKeys, false, "decode %2E/%2e escapes in keys as literal dots (requires allow-dots)")
	flags.BoolVar(&c.AllowEmptyLists, c.Flags.AllowEmptyLists, false, "decode a[] with no value as an empty sequence")
	flags.BoolVar(&c.Latin1, c.Flags.Latin1, false, "decode using ISO-8859-1 instead of UTF-8")
	flags.BoolVar(&c.CharsetSentinel, c.Flags.CharsetSentinel, false, "honor a leading utf8 sentinel pair to pick the charset")
	flags.BoolVar(&c.InterpretNumericEntities, c.Flags.InterpretNumericEntities, false, "decode &#NNN; numeric character references")
	flags.BoolVar(&c.Comma, c.Flags.Comma, false, "split comma-separated values into a sequence")
	flags.BoolVar(&c.StrictNullHandling, c.Flags.StrictNullHandling, false, "distinguish a bare key from key=")
	flags.BoolVar(&c.StrictDepth, c.Flags.StrictDepth, false, "fail instead of flattening when depth is exceeded")
	flags.BoolVar(&c.RaiseOnLimitExceeded, c.Flags.RaiseOnLimitExceeded, false, "fail instead of truncating when parameter-limit is exceeded")
	flags.BoolVar(&c.IgnoreQueryPrefix, c.Flags.IgnoreQueryPrefix, false, "strip a leading '?' before parsing")
}

// RegisterCompletions registers shell completions for decode flags on cmd.
func (c *DecodeConfig) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Delimiter, c.Flags.Depth, c.Flags.ListLimit, c.Flags.ParameterLimit} {
		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// Options builds the [qs.DecodeOption] slice described by this config.
func (c *DecodeConfig) Options() []qs.DecodeOption {
	opts := []qs.DecodeOption{
		qs.WithDelimiter(c.Delimiter),
		qs.WithDepth(c.Depth),
		qs.WithListLimit(c.ListLimit),
		qs.WithParameterLimit(c.ParameterLimit),
		qs.WithParseLists(c.ParseLists),
		qs.WithAllowDots(c.AllowDots),
		qs.WithAllowEmptyLists(c.AllowEmptyLists),
		qs.WithCharsetSentinel(c.CharsetSentinel),
		qs.WithInterpretNumericEntities(c.InterpretNumericEntities),
		qs.WithComma(c.Comma),
		qs.WithStrictNullHandling(c.StrictNullHandling),
		qs.WithStrictDepth(c.StrictDepth),
		qs.WithRaiseOnLimitExceeded(c.RaiseOnLimitExceeded),
		qs.WithIgnoreQueryPrefix(c.IgnoreQueryPrefix),
	}

	if c.DecodeDotInKeys {
		opts = append(opts, qs.WithDecodeDotInKeys(true))
	}

	if c.Latin1 {
		opts = append(opts, qs.WithCharset(percent.Latin1))
	}

	return opts
}

// EncodeFlags holds CLI flag names for encode configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewEncodeConfig].
type EncodeFlags struct {
	Delimiter          string
	EncodeValuesOnly   string
	EncodeDotInKeys    string
	ListFormat         string
	CommaRoundTrip     string
	CommaCompactNulls  string
	AllowDots          string
	AllowEmptyLists    string
	AddQueryPrefix     string
	SkipNulls          string
	StrictNullHandling string
	Latin1             string
	CharsetSentinel    string
}

// NewEncodeConfig creates a new [EncodeConfig] embedding these flag names.
func (f EncodeFlags) NewEncodeConfig() *EncodeConfig {
	return &EncodeConfig{Flags: f}
}

// EncodeConfig holds CLI flag values bridging to [qs.EncodeOption]s.
//
// Create instances with [NewEncodeConfig] and register CLI flags with
// [EncodeConfig.RegisterFlags]. Use [EncodeConfig.Options] to build the
// option slice passed to [qs.Encode].
type EncodeConfig struct {
	Flags EncodeFlags

	Delimiter          string
	EncodeValuesOnly   bool
	EncodeDotInKeys    bool
	ListFormat         string
	CommaRoundTrip     bool
	CommaCompactNulls  bool
	AllowDots          bool
	AllowEmptyLists    bool
	AddQueryPrefix     bool
	SkipNulls          bool
	StrictNullHandling bool
	Latin1             bool
	CharsetSentinel    bool
}

// NewEncodeConfig returns a new [EncodeConfig] with default flag names.
func NewEncodeConfig() *EncodeConfig {
	f := EncodeFlags{
		Delimiter:          "delimiter",
		EncodeValuesOnly:   "encode-values-only",
		EncodeDotInKeys:    "encode-dot-in-keys",
		ListFormat:         "list-format",
		CommaRoundTrip:     "comma-round-trip",
		CommaCompactNulls:  "comma-compact-nulls",
		AllowDots:          "allow-dots",
		AllowEmptyLists:    "allow-empty-lists",
		AddQueryPrefix:     "add-query-prefix",
		SkipNulls:          "skip-nulls",
		StrictNullHandling: "strict-null-handling",
		Latin1:             "latin1",
		CharsetSentinel:    "charset-sentinel",
	}

	return f.NewEncodeConfig()
}

// RegisterFlags adds encode flags to the given [*pflag.FlagSet].
func (c *EncodeConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Delimiter, c.Flags.Delimiter, "&", "pair delimiter")
	flags.BoolVar(&c.EncodeValuesOnly, c.Flags.EncodeValuesOnly, false, "percent-encode values but leave keys raw")
	flags.BoolVar(&c.EncodeDotInKeys, c.Flags.EncodeDotInKeys, false, "escape a literal dot in a key so it isn't read back as nesting")
	flags.StringVar(&c.ListFormat, c.Flags.ListFormat, "indices", "sequence format, one of: indices, brackets, repeat, comma")
	flags.BoolVar(&c.CommaRoundTrip, c.Flags.CommaRoundTrip, false, "append [] to a single-element comma sequence")
	flags.BoolVar(&c.CommaCompactNulls, c.Flags.CommaCompactNulls, false, "drop null elements instead of emitting empty fields in a comma sequence")
	flags.BoolVar(&c.AllowDots, c.Flags.AllowDots, false, "emit nested mapping keys with dots instead of brackets")
	flags.BoolVar(&c.AllowEmptyLists, c.Flags.AllowEmptyLists, false, "emit key[] for an empty sequence instead of omitting it")
	flags.BoolVar(&c.AddQueryPrefix, c.Flags.AddQueryPrefix, false, "prepend a leading '?'")
	flags.BoolVar(&c.SkipNulls, c.Flags.SkipNulls, false, "omit null-valued keys entirely")
	flags.BoolVar(&c.StrictNullHandling, c.Flags.StrictNullHandling, false, "emit a bare key instead of key= for a null value")
	flags.BoolVar(&c.Latin1, c.Flags.Latin1, false, "encode using ISO-8859-1 instead of UTF-8")
	flags.BoolVar(&c.CharsetSentinel, c.Flags.CharsetSentinel, false, "prepend a utf8 sentinel pair naming the charset used")
}

// RegisterCompletions registers shell completions for encode flags on cmd.
func (c *EncodeConfig) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.ListFormat,
		cobra.FixedCompletions([]string{"indices", "brackets", "repeat", "comma"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.ListFormat, err)
	}

	return nil
}

// Options builds the [qs.EncodeOption] slice described by this config.
func (c *EncodeConfig) Options() ([]qs.EncodeOption, error) {
	opts := []qs.EncodeOption{
		qs.WithEncodeDelimiter(c.Delimiter),
		qs.WithEncodeValuesOnly(c.EncodeValuesOnly),
		qs.WithCommaRoundTrip(c.CommaRoundTrip),
		qs.WithCommaCompactNulls(c.CommaCompactNulls),
		qs.WithEncodeAllowDots(c.AllowDots),
		qs.WithEncodeAllowEmptyLists(c.AllowEmptyLists),
		qs.WithAddQueryPrefix(c.AddQueryPrefix),
		qs.WithSkipNulls(c.SkipNulls),
		qs.WithEncodeStrictNullHandling(c.StrictNullHandling),
		qs.WithEncodeCharsetSentinel(c.CharsetSentinel),
	}

	if c.EncodeDotInKeys {
		opts = append(opts, qs.WithEncodeDotInKeys(true))
	}

	if c.Latin1 {
		opts = append(opts, qs.WithEncodeCharset(percent.Latin1))
	}

	format, err := parseListFormat(c.ListFormat)
	if err != nil {
		return nil, err
	}

	opts = append(opts, qs.WithListFormat(format))

	return opts, nil
}

func parseListFormat(s string) (qs.ListFormat, error) {
	switch s {
	case "indices":
		return qs.Indices, nil
	case "brackets":
		return qs.Brackets, nil
	case "repeat":
		return qs.Repeat, nil
	case "comma":
		return qs.Comma, nil
	default:
		return 0, fmt.Errorf("%w: unknown list-format %q", qs.ErrInvalidOption, s)
	}
}

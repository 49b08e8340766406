package scorer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/geodle/internal/daily"
)

// Share text defaults.
const (
	DefaultTag        = "#舆鉴#"
	DefaultURL        = "https://heliumjt.gitee.io/chinale"
	DefaultMaxGuesses = 6
	SummaryEpoch      = "2022-04-25"
)

const (
	modifierHideImage = " 🙈"
	modifierRotation  = " 🌀"
	modifierCounty    = " 县级"
)

// Options controls how the share text is rendered.
type Options struct {
	Theme Theme

	// Difficulty modifiers; at most one is shown, in this order of precedence.
	HideImage bool
	Rotation  bool
	County    bool

	MaxGuesses int
	Epoch      time.Time // day 0 of the title's day counter
	Tag        string
	URL        string
}

// DefaultOptions returns the options the published game used.
func DefaultOptions() Options {
	return Options{
		Theme:      ThemeLight,
		MaxGuesses: DefaultMaxGuesses,
		Epoch:      daily.MustParse(SummaryEpoch),
		Tag:        DefaultTag,
		URL:        DefaultURL,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Theme == "" {
		o.Theme = d.Theme
	}
	if o.MaxGuesses <= 0 {
		o.MaxGuesses = d.MaxGuesses
	}
	if o.Epoch.IsZero() {
		o.Epoch = d.Epoch
	}
	if o.Tag == "" {
		o.Tag = d.Tag
	}
	if o.URL == "" {
		o.URL = d.URL
	}
	return o
}

func (o Options) modifier() string {
	switch {
	case o.HideImage:
		return modifierHideImage
	case o.Rotation:
		return modifierRotation
	case o.County:
		return modifierCounty
	}
	return ""
}

// Summarize renders the shareable result for day: a title line, one line
// per guess and the link line, in that order. Players paste this text
// elsewhere, so its shape must stay stable.
func Summarize(day string, guesses []Guess, opts Options) (string, error) {
	opts = opts.withDefaults()
	dayIndex, err := daily.DayIndex(opts.Epoch, day)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(guesses)+2)
	lines = append(lines, title(dayIndex, guesses, opts))
	for _, g := range guesses {
		lines = append(lines, GuessLine(g, opts.Theme))
	}
	lines = append(lines, opts.URL)
	return strings.Join(lines, "\n"), nil
}

func title(dayIndex int, guesses []Guess, opts Options) string {
	count := "X"
	if won, n := Outcome(guesses); won {
		count = strconv.Itoa(n)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s 第%d天 %s/%d", opts.Tag, dayIndex, count, opts.MaxGuesses)
	if best, ok := BestPercent(guesses); ok {
		fmt.Fprintf(&b, " (%d%%)", best)
	}
	b.WriteString(opts.modifier())
	return b.String()
}

// GuessLine renders one guess as its squares followed by its arrow.
func GuessLine(g Guess, theme Theme) string {
	return strings.Join(Squares(g.Percent(), theme), "") + DirectionGlyph(g.Direction)
}

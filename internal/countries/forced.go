package countries

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/geodle/assets"
)

// LoadForced reads the day -> code override table from path, or the
// embedded default when path is empty. Codes are not checked against a
// Table here; unknown codes are skipped at selection time.
func LoadForced(path string) (map[string]string, error) {
	var (
		raw map[string]string
		err error
	)
	if path != "" {
		var b []byte
		if b, err = os.ReadFile(path); err == nil {
			err = json.Unmarshal(b, &raw)
		}
	} else {
		raw, err = assets.ForcedDays()
	}
	if err != nil {
		return nil, fmt.Errorf("countries: forced days: %w", err)
	}
	out := make(map[string]string, len(raw))
	for day, code := range raw {
		out[strings.TrimSpace(day)] = normalizeCode(code)
	}
	return out, nil
}

package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vkarlsson/scantrack/pkg/types"
)

// ParseItemList reads a plain-text item catalogue: one item per line, the
// barcode first, the rest of the line the display name. Blank lines are
// skipped; a line without a name is an error.
func ParseItemList(r io.Reader) ([]types.Item, error) {
	var items []types.Item

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		barcode, name, ok := strings.Cut(text, " ")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("line %d: expected \"BARCODE NAME\", got %q", line, text)
		}
		items = append(items, types.Item{
			Barcode: strings.ToUpper(barcode),
			Name:    strings.TrimSpace(name),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading item list: %w", err)
	}
	return items, nil
}

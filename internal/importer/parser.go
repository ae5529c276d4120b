// Package importer reads truck expenses from CSV spreadsheets.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	enc "github.com/MrJamesThe3rd/fleet/internal/encoding"
	"github.com/MrJamesThe3rd/fleet/internal/expense"
	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

// Parser turns a CSV file into expense rows keyed by truck plate. The header row may appear
// after preamble lines and may use either semicolons or commas.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]expense.ImportRow, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		rows, err := readRows(string(data), comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		slog.Debug("parsing expense csv", "profile", profile.Name, "charset", charset, "delimiter", string(comma))

		return parseRows(profile, cols, rows[headerIdx+1:])
	}

	return nil, fleet.Invalid("archivo", "no header row found: expected columns fecha;placa;tipo_gasto;monto")
}

// record is one CSV row with the 1-based line it starts on. Blank lines never produce a record.
type record struct {
	line  int
	cells []string
}

func readRows(data string, comma rune) ([]record, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []record

	for {
		cells, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}

		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, record{line: line, cells: cells})
	}
}

type colIndex map[string]int

func detectProfile(rows []record) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row.cells {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows converts data rows. Rows of empty cells are skipped; any other bad row fails the whole file.
func parseRows(p *Profile, cols colIndex, rows []record) ([]expense.ImportRow, error) {
	commentsIdx, hasComments := cols[p.CommentsCol]

	out := []expense.ImportRow{}

	for _, rec := range rows {
		row, line := rec.cells, rec.line

		if isBlank(row) {
			continue
		}

		date, err := parseDate(cellValue(row, cols[p.DateCol]))
		if err != nil {
			return nil, lineError(line, err)
		}

		plate := strings.ToUpper(cellValue(row, cols[p.PlateCol]))
		if plate == "" {
			return nil, lineError(line, fmt.Errorf("missing plate"))
		}

		category, err := parseCategory(cellValue(row, cols[p.CategoryCol]))
		if err != nil {
			return nil, lineError(line, err)
		}

		amount, err := parseAmount(cellValue(row, cols[p.AmountCol]))
		if err != nil {
			return nil, lineError(line, err)
		}

		var comments *string
		if hasComments {
			if c := cellValue(row, commentsIdx); c != "" {
				comments = &c
			}
		}

		out = append(out, expense.ImportRow{
			Line:     line,
			Plate:    plate,
			Category: category,
			Amount:   amount,
			Date:     date,
			Comments: comments,
		})
	}

	return out, nil
}

func lineError(line int, err error) error {
	return fleet.Invalid("archivo", "line %d: %v", line, err)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

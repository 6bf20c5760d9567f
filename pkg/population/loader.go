package population

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"

	"storescan-go/pkg/logger"
)

// Census exports commonly ship as cp949. Anything that is not valid UTF-8 is
// run through the EUC-KR decoder before parsing.
func decodeCSVBytes(raw []byte) ([]byte, error) {
	if utf8.Valid(raw) {
		return raw, nil
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cp949 content: %w", err)
	}
	return decoded, nil
}

// Load reads the population CSV into an immutable Table. A missing or
// unreadable file returns a nil table and an error; callers treat a nil
// table as the "no data" state rather than failing the whole process.
func Load(csvPath string) (*Table, error) {
	log := logger.GetLogger().WithField("component", "population_loader")

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read population table: %w", err)
	}

	decoded, err := decodeCSVBytes(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse population table: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("population table has no data rows")
	}

	header := records[0]
	provinceIdx := findColumn(header, "시도")
	districtIdx := findColumn(header, "시군구")
	subDistrictIdx := findColumn(header, "행정동", "읍면동", "동명")
	if provinceIdx < 0 || districtIdx < 0 || subDistrictIdx < 0 {
		return nil, fmt.Errorf("population table is missing region name columns")
	}

	countColumns := make([]string, 0, len(header))
	countIdx := make([]int, 0, len(header))
	for i, name := range header {
		if i == provinceIdx || i == districtIdx || i == subDistrictIdx {
			continue
		}
		countColumns = append(countColumns, name)
		countIdx = append(countIdx, i)
	}

	table := &Table{columns: countColumns}
	for _, record := range records[1:] {
		if len(record) <= subDistrictIdx {
			continue
		}
		row := Row{
			Province:    strings.TrimSpace(record[provinceIdx]),
			District:    strings.TrimSpace(record[districtIdx]),
			SubDistrict: strings.TrimSpace(record[subDistrictIdx]),
			Counts:      make(map[string]string, len(countColumns)),
		}
		for j, idx := range countIdx {
			if idx < len(record) {
				row.Counts[countColumns[j]] = record[idx]
			}
		}
		table.rows = append(table.rows, row)
	}

	log.WithFields(map[string]interface{}{
		"rows":    len(table.rows),
		"columns": len(countColumns),
	}).Info("Population table loaded")

	return table, nil
}

func findColumn(header []string, hints ...string) int {
	for i, name := range header {
		for _, hint := range hints {
			if strings.Contains(name, hint) {
				return i
			}
		}
	}
	return -1
}

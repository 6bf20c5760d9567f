package population

// Row is one administrative region's raw census record. Count values stay as
// raw strings until aggregation so thousands separators survive loading.
type Row struct {
	Province    string
	District    string
	SubDistrict string
	Counts      map[string]string
}

// Table is the read-only population table. It is loaded once at startup and
// shared by reference; nothing mutates it afterwards.
type Table struct {
	columns []string
	rows    []Row
}

// Columns returns the count column headers.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return t.columns
}

// Provinces lists distinct province names in row order.
func (t *Table) Provinces() []string {
	if t == nil {
		return nil
	}
	return distinct(t.rows, func(r Row) string { return r.Province }, func(Row) bool { return true })
}

// Districts lists distinct district names within a province.
func (t *Table) Districts(province string) []string {
	if t == nil {
		return nil
	}
	return distinct(t.rows, func(r Row) string { return r.District }, func(r Row) bool {
		return r.Province == province
	})
}

// SubDistricts lists distinct sub-district names within a district.
func (t *Table) SubDistricts(province, district string) []string {
	if t == nil {
		return nil
	}
	return distinct(t.rows, func(r Row) string { return r.SubDistrict }, func(r Row) bool {
		return r.Province == province && r.District == district
	})
}

// RowsFor returns the rows matching the chosen sub-districts.
func (t *Table) RowsFor(province, district string, subDistricts []string) []Row {
	if t == nil || len(subDistricts) == 0 {
		return nil
	}

	chosen := make(map[string]bool, len(subDistricts))
	for _, name := range subDistricts {
		chosen[name] = true
	}

	var matched []Row
	for _, row := range t.rows {
		if row.Province == province && row.District == district && chosen[row.SubDistrict] {
			matched = append(matched, row)
		}
	}
	return matched
}

func distinct(rows []Row, key func(Row) string, match func(Row) bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		if !match(row) {
			continue
		}
		name := key(row)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

package sheets

import "fmt"

// Table converts a raw cell grid into rows keyed by header. The first row
// holds the headers; blank or repeated headers are made unique so the result
// can be keyed safely (blanks become Column_<i>, repeats get a _N suffix).
// Short rows are padded with empty cells.
func Table(grid [][]string) []map[string]string {
	if len(grid) == 0 {
		return nil
	}

	headers := uniqueHeaders(grid[0])
	rows := make([]map[string]string, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func uniqueHeaders(raw []string) []string {
	seen := make(map[string]int, len(raw))
	headers := make([]string, 0, len(raw))
	for i, h := range raw {
		if h == "" || seen[h] > 0 {
			base := h
			if base == "" {
				base = fmt.Sprintf("Column_%d", i)
			}
			count := seen[base]
			name := base
			if count > 0 {
				name = fmt.Sprintf("%s_%d", base, count)
			}
			headers = append(headers, name)
			seen[base] = count + 1
			continue
		}
		headers = append(headers, h)
		seen[h] = 1
	}
	return headers
}

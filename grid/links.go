package grid

// References walks the same span expansion as Build, but reports the
// outbound link target found in the designated column of each expanded
// row. Rows whose cell in that column carries no link are absent from
// the result. The column index refers to the expanded grid, not the
// raw cell ordinal.
func References(rows []Row, linkColumn int) (map[int]string, error) {
	expanded, err := expand(rows)
	if err != nil {
		return nil, err
	}

	refs := make(map[int]string)
	for i, row := range expanded {
		if linkColumn < 0 || linkColumn >= len(row) {
			continue
		}
		if ref := row[linkColumn].Ref; ref != "" {
			refs[i] = ref
		}
	}
	return refs, nil
}

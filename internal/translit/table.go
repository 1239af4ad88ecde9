package translit

// sourceGroups lists every precomposed character of the Vietnamese alphabet
// that carries a diacritic, grouped by the ASCII letter it folds to.
var sourceGroups = []struct {
	chars string
	ascii rune
}{
	{"àáảãạăằắẳẵặâầấẩẫậ", 'a'},
	{"đ", 'd'},
	{"èéẻẽẹêềếểễệ", 'e'},
	{"ìíỉĩị", 'i'},
	{"òóỏõọôồốổỗộơờớởỡợ", 'o'},
	{"ùúủũụưừứửữự", 'u'},
	{"ỳýỷỹỵ", 'y'},
	{"ÀÁẢÃẠĂẰẮẲẴẶÂẦẤẨẪẬ", 'A'},
	{"Đ", 'D'},
	{"ÈÉẺẼẸÊỀẾỂỄỆ", 'E'},
	{"ÌÍỈĨỊ", 'I'},
	{"ÒÓỎÕỌÔỒỐỔỖỘƠỜỚỞỠỢ", 'O'},
	{"ÙÚỦŨỤƯỪỨỬỮỰ", 'U'},
	{"ỲÝỶỸỴ", 'Y'},
}

// table is the process-wide substitution table. It is built once at package
// initialisation and only read afterwards.
var table = buildTable()

func buildTable() map[rune]rune {
	out := make(map[rune]rune, 134)
	for _, group := range sourceGroups {
		for _, r := range group.chars {
			out[r] = group.ascii
		}
	}
	return out
}

// Lookup returns the ASCII replacement for r when r belongs to the table.
func Lookup(r rune) (rune, bool) {
	ascii, ok := table[r]
	return ascii, ok
}

// TableSize reports how many source characters the table covers.
func TableSize() int {
	return len(table)
}

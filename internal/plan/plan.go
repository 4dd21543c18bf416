package plan

import (
	"os"
	"strings"
	"unicode"
)

// Entry — одна непустая строка outline: глубина и «сырое» имя.
// Raw очищен только справа, ведущие пробелы сохранены.
type Entry struct {
	Depth int    // количество ведущих пробельных символов (таб = 1)
	Raw   string // строка без хвостовых пробелов
}

// IsDir — строка оканчивается разделителем пути.
// Проверяется до санитизации, иначе слэш будет вырезан.
func (e Entry) IsDir() bool {
	return strings.HasSuffix(e.Raw, "/") ||
		strings.HasSuffix(e.Raw, string(os.PathSeparator))
}

// Name — имя без ведущих пробелов (ещё не санитизированное).
func (e Entry) Name() string {
	return strings.TrimLeftFunc(e.Raw, unicode.IsSpace)
}

// Plan — записи outline в порядке обхода (pre-order).
type Plan struct {
	Entries []Entry
}

// Counts возвращает число каталогов и файлов в плане.
func (p Plan) Counts() (dirs, files int) {
	for _, e := range p.Entries {
		if e.IsDir() {
			dirs++
		} else {
			files++
		}
	}
	return dirs, files
}

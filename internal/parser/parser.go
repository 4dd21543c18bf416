package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"codestream/internal/plan"
)

const bom = "\uFEFF"

// Parse читает outline и возвращает записи в порядке строк.
// Глубина — число ведущих пробельных символов, таб считается за один.
// Структура отступов не проверяется: «лишняя» глубина разрешается при применении.
func Parse(r io.Reader) (plan.Plan, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1024*1024)
	sc.Split(scanLines)

	var entries []plan.Entry
	lineNum := 0

	for sc.Scan() {
		lineNum++
		raw := sc.Text()
		if lineNum == 1 {
			raw = strings.TrimPrefix(raw, bom)
		}
		if !utf8.ValidString(raw) {
			return plan.Plan{}, fmt.Errorf("строка %d: некорректный UTF-8", lineNum)
		}

		// Справа чистим всё, слева — ничего: отступ нужен для глубины.
		line := strings.TrimRightFunc(raw, unicode.IsSpace)
		if line == "" {
			continue
		}

		entries = append(entries, plan.Entry{
			Depth: countDepth(line),
			Raw:   line,
		})
	}
	if err := sc.Err(); err != nil {
		return plan.Plan{}, err
	}

	return plan.Plan{Entries: entries}, nil
}

// ParseFile открывает файл и разбирает его через Parse.
func ParseFile(path string) (plan.Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("не удалось открыть outline %q: %w", path, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// countDepth считает ведущие пробельные руны без раскрытия табов.
func countDepth(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// scanLines — как bufio.ScanLines, но понимает и одиночный '\r'.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// '\r': смотрим, не идёт ли следом '\n'
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

package safety

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// initPy сохраняется как есть: иначе правило про ведущие '_' его сломает.
const initPy = "__init__.py"

// ErrUnsafePath — итоговый путь выходит за пределы корня.
var ErrUnsafePath = errors.New("путь выходит за пределы корня")

// Sanitize приводит сырое имя из outline к одному безопасному сегменту пути:
// остаются буквы, цифры, '_', '-', '.'; пробелы становятся '_';
// ведущие '_' срезаются. Результат может оказаться пустым.
func Sanitize(name string) string {
	if strings.TrimSpace(name) == initPy {
		return initPy
	}

	name = strings.TrimLeft(name, "_")
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}

	// После фильтрации в начале снова может оказаться '_' (" _x", "!_x").
	// Срезаем повторно, чтобы Sanitize(Sanitize(x)) == Sanitize(x).
	return strings.TrimLeft(b.String(), "_")
}

// SafeJoin объединяет root и parts и убеждается, что результат остаётся внутри root.
// Sanitize пропускает "..", поэтому проверка нужна на каждом шаге.
func SafeJoin(root string, parts ...string) (string, error) {
	p := filepath.Join(append([]string{root}, parts...)...)
	cleanRoot := filepath.Clean(root)
	cleanP := filepath.Clean(p)

	rel, err := filepath.Rel(cleanRoot, cleanP)
	if err != nil {
		return "", err
	}
	relSl := filepath.ToSlash(rel)
	if relSl == ".." || strings.HasPrefix(relSl, "../") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, p)
	}
	return cleanP, nil
}

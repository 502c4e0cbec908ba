package domain

// TreatmentCatalog упорядоченный набор допустимых названий лечений.
// Задаётся внешней конфигурацией и инжектируется в валидацию бронирования.
type TreatmentCatalog []string

// Contains проверяет, что лечение присутствует в каталоге
func (c TreatmentCatalog) Contains(name string) bool {
	for _, t := range c {
		if t == name {
			return true
		}
	}
	return false
}

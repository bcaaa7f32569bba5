package models

// Service представляет услугу из управляемого каталога.
// Каталог наполняется сидированием и не изменяется через основной API.
type Service struct {
	ID          int     `json:"id"`                    // Уникальный числовой идентификатор
	Name        string  `json:"name"`                  // Название услуги (уникальное)
	Description *string `json:"description,omitempty"` // Описание (опционально)
}

package models

import "time"

// Subscription представляет связь пользователь–услуга (строка user_services).
// Поле EndDate может быть nil — подписка бессрочная. Active — хранимый флаг,
// он не выводится из сравнения дат.
type Subscription struct {
	ID        int        // Уникальный идентификатор строки
	UserID    int        // Владелец подписки
	ServiceID int        // Услуга каталога
	Active    bool       // Флаг активности
	StartDate time.Time  // Дата начала
	EndDate   *time.Time // Дата окончания, nil — бессрочно
}

// SubscriptionInfo — подписка, дополненная данными услуги для отображения.
// Даты отдаются строками в формате 2006-01-02.
type SubscriptionInfo struct {
	SubscriptionID     int     `json:"subscription_id"`
	ServiceID          int     `json:"service_id"`
	ServiceName        string  `json:"service_name"`
	ServiceDescription *string `json:"service_description,omitempty"`
	Active             bool    `json:"active"`
	StartDate          string  `json:"start_date"`
	EndDate            *string `json:"end_date"`
}

// DummySubscription используется для приёма данных создания подписки
// из JSON-запроса. Даты приходят строками в формате 2006-01-02,
// StartDate по умолчанию — сегодняшняя дата, Active по умолчанию — true.
type DummySubscription struct {
	ServiceID int     `json:"service_id" validate:"required,gt=0"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// UpdateSubscriptionRequest описывает частичное обновление подписки.
// Изменяемы только флаг активности и дата окончания.
type UpdateSubscriptionRequest struct {
	Active  *bool   `json:"active,omitempty"`
	EndDate *string `json:"end_date,omitempty"`
}

// IsEmpty сообщает, что ни одно поле обновления не задано.
func (r UpdateSubscriptionRequest) IsEmpty() bool {
	return r.Active == nil && r.EndDate == nil
}

// SubscriptionPatch — набор изменяемых колонок для слоя хранилища.
type SubscriptionPatch struct {
	Active  *bool
	EndDate *time.Time
}

package usecase

type AddLeadInput struct {
	Name     string  `json:"name"`
	Company  string  `json:"company"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Value    float64 `json:"value"`
	Priority string  `json:"priority"`
	Source   string  `json:"source"`
	Notes    string  `json:"notes"`

	// Quem está capturando o lead; vira o owner default.
	CreatedBy string `json:"created_by"`
}

type StageSummary struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type PipelineSummary struct {
	Stages     []StageSummary `json:"stages"`
	TotalLeads int            `json:"total_leads"`
	// Soma dos valores fora do estágio terminal.
	OpenValue float64 `json:"open_value"`
}

type ReminderSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	High     int `json:"high"`
}

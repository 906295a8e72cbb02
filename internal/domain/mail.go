package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ExportMailData struct {
	Filename string `json:"filename"`
	CSV      string `json:"csv"`
}

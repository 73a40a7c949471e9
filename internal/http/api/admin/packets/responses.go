package packets

type UploadResponse struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Filename    string `json:"filename"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

package dto

type ImageSearchResponse struct {
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
	Results    []ImageResponse `json:"results"`
}

type ImageResponse struct {
	Id          string `json:"id"`
	Alt         string `json:"alt"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail"`
	Attribution string `json:"attribution"`
}

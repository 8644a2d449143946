package dto

// GenerateImageRequest 生成图片请求
type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateImageResponse 生成图片成功响应
type GenerateImageResponse struct {
	Success bool   `json:"success"`
	Image   string `json:"image"`
	Prompt  string `json:"prompt"`
	Seed    int64  `json:"seed"`
}

// GenerateImageResult 客户端视角的统一响应，成功与失败字段合并
type GenerateImageResult struct {
	Success bool   `json:"success"`
	Image   string `json:"image,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
	Error   string `json:"error,omitempty"`
}

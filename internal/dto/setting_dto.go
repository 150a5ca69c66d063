package dto

import "carhub/internal/model"

type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

type SettingResponse struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
	Editable    bool    `json:"editable"`
}

func SettingToResponse(s *model.Setting) *SettingResponse {
	return &SettingResponse{
		Key:         s.Key,
		Value:       s.Value,
		Type:        string(s.Type),
		Description: s.Description,
		Editable:    s.Editable,
	}
}

package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Аутентификация ============

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserID    int    `json:"user_id"`
	FIO       string `json:"fio"`
	Role      int    `json:"role"`
	RoleLabel string `json:"role_label"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	TokenType string `json:"token_type"`
}

type ProfileResponse struct {
	UserID    int      `json:"user_id"`
	FIO       string   `json:"fio"`
	Role      int      `json:"role"`
	RoleLabel string   `json:"role_label"`
	Title     string   `json:"title"`
	Actions   []string `json:"actions"`
}

// ============ Заявки ============

type CreateRequestRequest struct {
	EquipmentTypeID int    `json:"equipment_type_id" binding:"required,gt=0"`
	Model           string `json:"model"`
	Problem         string `json:"problem" binding:"required"`
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
}

type RequestResponse struct {
	ID              int     `json:"id"`
	StartDate       string  `json:"start_date"`
	EquipmentTypeID int     `json:"equipment_type_id"`
	Model           string  `json:"model"`
	Problem         string  `json:"problem"`
	Status          int     `json:"status"`
	StatusName      string  `json:"status_name"`
	CompletionDate  *string `json:"completion_date,omitempty"`
	RepairParts     *string `json:"repair_parts,omitempty"`
	MasterID        *int    `json:"master_id,omitempty"`
	ClientID        *int    `json:"client_id,omitempty"`
}

type ChangeStatusRequest struct {
	Status int `json:"status" binding:"required,oneof=1 2 3"`
}

type AssignMasterRequest struct {
	MasterID int `json:"master_id" binding:"required,gt=0"`
}

type CommentRequest struct {
	Message string `json:"message" binding:"required"`
}

type CommentResponse struct {
	RequestID int    `json:"request_id"`
	Message   string `json:"message"`
}

// ============ Справочники ============

type MasterResponse struct {
	ID    int    `json:"id"`
	FIO   string `json:"fio"`
	Phone string `json:"phone"`
}

type EquipmentTypeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ============ Фото ============

type PhotoResponse struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

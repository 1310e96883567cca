package identityservice

// Student модель студента из IdentityService
type Student struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	StudyGroup string `json:"study_group"`
	IsEligible bool   `json:"is_eligible"` // допущен ли к записи на консультации
	IsStaff    bool   `json:"is_staff"`    // сотрудник отдела по работе со студентами
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

package identityservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с IdentityService
// IdentityService - единственный источник сведений о студентах:
// отображаемое имя, допуск к записи, признак сотрудника
// Аутентификацию сервис записи не выполняет - граница доверенная
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента IdentityService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStudent получает профиль студента по ID
func (c *Client) GetStudent(ctx context.Context, studentID int64) (*Student, error) {
	url := fmt.Sprintf("%s/internal/students/%d", c.baseURL, studentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid student ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrStudentNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var student Student
	if err := json.NewDecoder(resp.Body).Decode(&student); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &student, nil
}

// GetStudentWithGracefulDegradation получает профиль студента с graceful degradation
// При недоступности IdentityService возвращает ErrServiceDegraded:
// проекции календаря подставляют обезличенное имя, но не падают
// Для подачи заявки degradation не применяется - допуск проверяется строго
func (c *Client) GetStudentWithGracefulDegradation(ctx context.Context, studentID int64) (*Student, error) {
	student, err := c.GetStudent(ctx, studentID)
	if err != nil {
		// Критичная бизнес-ошибка пробрасывается дальше
		if err == ErrStudentNotFound {
			c.log.Info("No student found for id=%d", studentID)
			return nil, err
		}

		// Для остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("IdentityService unavailable, applying graceful degradation for student_id=%d: %v", studentID, err)
		return nil, fmt.Errorf("%w: student_id=%d, error=%v", ErrServiceDegraded, studentID, err)
	}

	return student, nil
}

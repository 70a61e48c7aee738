package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// PathInt64 извлекает положительный ID из пути запроса
func PathInt64(r *http.Request, name string) (int64, error) {
	value, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("path variable %s is missing", name)
	}
	return parsePositive(name, value)
}

// QueryInt64 разбирает необязательный положительный ID из query параметров
func QueryInt64(r *http.Request, name string) (*int64, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	id, err := parsePositive(name, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// QueryDate разбирает необязательную дату в формате YYYY-MM-DD
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &date, nil
}

// QueryBool разбирает необязательный флаг, по умолчанию false
func QueryBool(r *http.Request, name string) (bool, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

// QueryIntList разбирает список чисел через запятую: "30,60,90"
func QueryIntList(r *http.Request, name string) ([]int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		result = append(result, n)
	}
	return result, nil
}

// QueryString возвращает указатель на значение параметра или nil
func QueryString(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}

func parsePositive(name, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return id, nil
}

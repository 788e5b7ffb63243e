package domain

import "strings"

// ValidateCreateUser проверяет бизнес-правила для создания пользователя.
func ValidateCreateUser(in CreateUserInput) error {
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if in.AvatarURL != nil {
		return validateURL(*in.AvatarURL, "avatarUrl")
	}
	return nil
}

// ValidateUpdateUser проверяет только те поля, которые пришли в запросе.
func ValidateUpdateUser(in UpdateUserInput) error {
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return err
		}
	}
	if in.AvatarURL != nil {
		return validateURL(*in.AvatarURL, "avatarUrl")
	}
	return nil
}

// email не нормализуется автоматически: ненормализованный ввод отклоняется
func validateEmail(email string) error {
	if strings.TrimSpace(strings.ToLower(email)) != email {
		return NewValidationError("Email should be lowercase and trimmed")
	}
	return nil
}

func validateURL(url, field string) error {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return NewValidationError("%s must be a valid HTTP or HTTPS URL", field)
	}
	return nil
}

package validator

import (
	"fmt"
	"mime"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	maxNameLength     = 100
	maxPhoneLength    = 20
	maxContentTypeLen = 255
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt           = "email cannot be empty"
	errEmailLengthFmt          = "email must be between %d and %d characters"
	errEmailInvalidFmt         = "invalid email format"
	errNameEmptyFmt            = "%s cannot be empty"
	errNameMaxLengthFmt        = "%s must not exceed %d characters"
	errNameControlCharsFmt     = "%s cannot contain control characters"
	errPhoneMaxLengthFmt       = "phone must not exceed %d characters"
	errPhoneInvalidFmt         = "invalid phone format"
	errContentTypeMaxLengthFmt = "content type must not exceed %d characters"
	errContentTypeInvalidFmt   = "invalid content type"
	errContentTypeNotImageFmt  = "content type must be an image type"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ()-]{7,}$`)
)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

// PersonName validates a first or last name. The field argument is used in
// error messages.
func PersonName(field, name string) error {
	if name == "" {
		return fmt.Errorf(errNameEmptyFmt, field)
	}

	if len(name) > maxNameLength {
		return fmt.Errorf(errNameMaxLengthFmt, field, maxNameLength)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errNameControlCharsFmt, field)
		}
	}

	return nil
}

// Phone validates an optional phone number. Empty is allowed.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}

	if len(phone) > maxPhoneLength {
		return fmt.Errorf(errPhoneMaxLengthFmt, maxPhoneLength)
	}

	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf(errPhoneInvalidFmt)
	}

	return nil
}

// ImageContentType validates the declared content type for an avatar upload.
func ImageContentType(contentType string) error {
	if contentType == "" {
		return nil
	}

	if len(contentType) > maxContentTypeLen {
		return fmt.Errorf(errContentTypeMaxLengthFmt, maxContentTypeLen)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf(errContentTypeInvalidFmt)
	}

	if !strings.HasPrefix(mediaType, "image/") {
		return fmt.Errorf(errContentTypeNotImageFmt)
	}

	return nil
}

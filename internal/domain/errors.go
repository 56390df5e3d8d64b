/**
 * @description
 * This file declares the sentinel errors the service layer wraps so the HTTP
 * layer can map failures to status codes with errors.Is.
 */
package domain

import "errors"

// ErrInvalidInput marks requests whose parameters fall outside accepted bounds.
var ErrInvalidInput = errors.New("invalid input")

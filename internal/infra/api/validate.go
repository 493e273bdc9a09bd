package api

import "github.com/go-playground/validator/v10"

// validate checks write payloads before they reach the network.
var validate = validator.New(validator.WithRequiredStructEnabled())

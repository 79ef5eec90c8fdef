package identity

import (
	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

type LoginParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	DeviceID string `json:"device_id" validate:"required"`
}

type LoginCommand struct {
	email    string
	password string
	deviceID string
}

func NewLoginCommand(p LoginParams) (LoginCommand, error) {
	if err := validate.Struct(failure.ModuleIdentity, p); err != nil {
		return LoginCommand{}, err
	}
	return LoginCommand{email: p.Email, password: p.Password, deviceID: p.DeviceID}, nil
}

func (c LoginCommand) Email() string    { return c.email }
func (c LoginCommand) Password() string { return c.password }
func (c LoginCommand) DeviceID() string { return c.deviceID }

// String hides the password from logs.
func (c LoginCommand) String() string {
	return "LoginCommand{email=" + c.email + ", device_id=" + c.deviceID + "}"
}

// Package application implements simulated authentication: login with the
// fixed verification code, registration, password reset and role switching.
// Session tokens are real JWTs even though identity itself is simulated.
package application

import (
	"errors"
	"strings"

	identity "lngtrade-cloud/internal/identity/domain"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/state"
)

// VerifyCode is the fixed mock verification code.
const VerifyCode = "123456"

// AuthResult is the outcome of an auth operation. Token is set on
// successful login only.
type AuthResult struct {
	Success bool
	Error   string
	Token   string
}

// Service drives the identity workflow.
type Service struct {
	store  *state.Store
	gen    *numbering.Generator
	clock  state.Clock
	issuer *TokenIssuer
}

// NewService constructs an identity service. The issuer may be nil; logins
// then succeed without a token.
func NewService(store *state.Store, gen *numbering.Generator, clock state.Clock, issuer *TokenIssuer) (*Service, error) {
	if store == nil {
		return nil, errors.New("identity service: nil store")
	}
	if gen == nil {
		return nil, errors.New("identity service: nil generator")
	}
	if clock == nil {
		clock = state.SystemClock{}
	}
	return &Service{store: store, gen: gen, clock: clock, issuer: issuer}, nil
}

// LoginInput is a login form.
type LoginInput struct {
	Phone      string
	Password   string
	VerifyCode string
}

// Login authenticates a user and installs it as the current session.
func (s *Service) Login(input LoginInput) AuthResult {
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return AuthResult{Error: "请输入手机号"}
	}
	if strings.TrimSpace(input.Password) == "" {
		return AuthResult{Error: "请输入密码"}
	}
	if strings.TrimSpace(input.VerifyCode) != VerifyCode {
		return AuthResult{Error: "验证码错误，请输入 123456（Mock）"}
	}

	var result AuthResult
	s.store.Update(func(st *state.State) error {
		user := st.FindUserByPhone(phone)
		if user == nil {
			result = AuthResult{Error: "账号不存在"}
			return errAuth
		}
		if user.Password != input.Password {
			result = AuthResult{Error: "密码错误"}
			return errAuth
		}

		session := *user
		st.Authenticated = true
		st.CurrentUser = &session
		st.CurrentRole = user.Role
		if user.CustomerID != "" {
			st.ActiveCustomerID = user.CustomerID
		}
		st.ActiveCustomerName = user.OrganizationName

		result = AuthResult{Success: true}
		if s.issuer != nil {
			token, err := s.issuer.Issue(session, s.clock.Now())
			if err != nil {
				result = AuthResult{Error: "登录态签发失败"}
				return err
			}
			result.Token = token
		}
		return nil
	})
	return result
}

var errAuth = errors.New("identity service: auth failed")

// RegisterInput is a registration form.
type RegisterInput struct {
	OrganizationName string
	ContactName      string
	Phone            string
	Password         string
	VerifyCode       string
	Role             string
}

// Register creates a new identity. Terminal-role accounts get a fresh
// customer id so their fund context is distinct.
func (s *Service) Register(input RegisterInput) AuthResult {
	phone := strings.TrimSpace(input.Phone)
	if strings.TrimSpace(input.OrganizationName) == "" {
		return AuthResult{Error: "请输入组织名称"}
	}
	if strings.TrimSpace(input.ContactName) == "" {
		return AuthResult{Error: "请输入联系人"}
	}
	if phone == "" {
		return AuthResult{Error: "请输入手机号"}
	}
	if strings.TrimSpace(input.Password) == "" {
		return AuthResult{Error: "请输入登录密码"}
	}
	if strings.TrimSpace(input.VerifyCode) != VerifyCode {
		return AuthResult{Error: "验证码错误，请输入 123456（Mock）"}
	}

	var result AuthResult
	s.store.Update(func(st *state.State) error {
		if st.FindUserByPhone(phone) != nil {
			result = AuthResult{Error: "该手机号已注册"}
			return errAuth
		}

		user := identity.User{
			ID:               s.gen.NextID("auth"),
			Phone:            phone,
			Password:         input.Password,
			ContactName:      strings.TrimSpace(input.ContactName),
			OrganizationName: strings.TrimSpace(input.OrganizationName),
			Role:             input.Role,
		}
		if input.Role == identity.RoleTerminal {
			user.CustomerID = s.gen.NextID("customer")
		}
		st.Users = append([]identity.User{user}, st.Users...)

		result = AuthResult{Success: true}
		return nil
	})
	return result
}

// ResetInput is a password reset form.
type ResetInput struct {
	Phone       string
	VerifyCode  string
	NewPassword string
}

// ResetPassword replaces a user's password after verify-code validation.
func (s *Service) ResetPassword(input ResetInput) AuthResult {
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return AuthResult{Error: "请输入手机号"}
	}
	if strings.TrimSpace(input.VerifyCode) != VerifyCode {
		return AuthResult{Error: "验证码错误，请输入 123456（Mock）"}
	}
	if strings.TrimSpace(input.NewPassword) == "" {
		return AuthResult{Error: "请输入新密码"}
	}

	var result AuthResult
	s.store.Update(func(st *state.State) error {
		user := st.FindUserByPhone(phone)
		if user == nil {
			result = AuthResult{Error: "账号不存在"}
			return errAuth
		}
		user.Password = input.NewPassword
		result = AuthResult{Success: true}
		return nil
	})
	return result
}

// Logout clears the current session.
func (s *Service) Logout() {
	s.store.Update(func(st *state.State) error {
		st.Authenticated = false
		st.CurrentUser = nil
		return nil
	})
}

// SwitchRole changes the active role without re-authentication.
func (s *Service) SwitchRole(role string) error {
	normalized, ok := identity.NormalizeRole(role)
	if !ok {
		return identity.ErrUnknownRole
	}
	return s.store.Update(func(st *state.State) error {
		st.CurrentRole = normalized
		return nil
	})
}

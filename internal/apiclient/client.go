// Package apiclient issues every outbound call to the user backend and
// turns failures into text that can be shown to a person.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-portal/internal/domain"
)

// Backend paths relative to the API base URL.
const (
	PathRegisterEmployee = "/users/register-employee"
	PathRegisterManager  = "/users/register-manager"
	PathLogin            = "/users/login"
	PathVerify           = "/users/verify"
	PathDepartments      = "/users/departments"
)

const defaultTimeout = 10 * time.Second

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the user backend.
type Client struct {
	baseURL string
	timeout time.Duration
}

// New builds a client for the given API base URL, e.g. http://localhost:5078/api.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Host returns the base URL without its "/api" suffix.
func (c *Client) Host() string {
	return strings.TrimSuffix(c.baseURL, "/api")
}

// RegisterEmployee posts a registration to the employee endpoint.
func (c *Client) RegisterEmployee(ctx context.Context, req domain.RegistrationRequest) (domain.MessageResponse, error) {
	var out domain.MessageResponse
	err := c.do(ctx, fiber.MethodPost, PathRegisterEmployee, nil, req, &out)
	return out, err
}

// RegisterManager posts a registration to the manager endpoint.
func (c *Client) RegisterManager(ctx context.Context, req domain.RegistrationRequest) (domain.MessageResponse, error) {
	var out domain.MessageResponse
	err := c.do(ctx, fiber.MethodPost, PathRegisterManager, nil, req, &out)
	return out, err
}

// Login exchanges credentials for a LoginResult.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	var out domain.LoginResult
	err := c.do(ctx, fiber.MethodPost, PathLogin, nil, creds, &out)
	return out, err
}

// VerifyEmail submits a verification token. The result is the decoded body:
// a string for plain text or JSON string responses, otherwise whatever JSON
// value the backend sent.
func (c *Client) VerifyEmail(ctx context.Context, token string) (any, error) {
	var raw rawBody
	err := c.do(ctx, fiber.MethodGet, PathVerify, url.Values{"token": {token}}, nil, &raw)
	if err != nil {
		return nil, err
	}
	return decodeBody(raw), nil
}

// GetDepartments lists the departments known to the backend.
func (c *Client) GetDepartments(ctx context.Context) ([]domain.Department, error) {
	var out []domain.Department
	err := c.do(ctx, fiber.MethodGet, PathDepartments, nil, nil, &out)
	return out, err
}

type rawBody []byte

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := ctx.Err(); err != nil {
		return &Error{Message: err.Error(), Err: err}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(endpoint)
	agent.Set(fiber.HeaderAccept, "application/json, text/plain, */*")
	if body != nil {
		agent.JSON(body)
	}
	agent.Timeout(c.requestTimeout(ctx))

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return &Error{Message: err.Error(), Err: fmt.Errorf("prepare %s %s: %w", method, path, err)}
	}

	// Bytes releases the agent.
	code, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		return &Error{Message: err.Error(), Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return &Error{Status: code, Body: decodeBody(respBody)}
	}

	switch dst := out.(type) {
	case nil:
		return nil
	case *rawBody:
		*dst = append((*dst)[:0], respBody...)
		return nil
	default:
		if len(bytes.TrimSpace(respBody)) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Status: code, Err: fmt.Errorf("decode %s response: %w", path, err)}
		}
		return nil
	}
}

func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return timeout
}

// decodeBody returns nil for an empty body, the decoded JSON value when the
// body is JSON, and the raw text otherwise.
func decodeBody(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(body)
	}
	return v
}

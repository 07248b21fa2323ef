package platform

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/token"
)

var (
	imageRe  = regexp.MustCompile(`^[a-z0-9][a-z0-9._/-]*(:[A-Za-z0-9._-]+)?$`)
	envKeyRe = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)
)

// validate is shared by every validated constructor in this package.
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("resource_name", validateResourceName)
	_ = validate.RegisterValidation("image_ref", validateImageRef)
	_ = validate.RegisterValidation("env_key", validateEnvKey)
	_ = validate.RegisterValidation("endpoint_list", validateEndpointList)
}

func validateResourceName(fl validator.FieldLevel) bool {
	return nodeid.ValidateName(fl.Field().String()) == nil
}

func validateImageRef(fl validator.FieldLevel) bool {
	return imageRe.MatchString(fl.Field().String())
}

func validateEnvKey(fl validator.FieldLevel) bool {
	return envKeyRe.MatchString(fl.Field().String())
}

func validateEndpointList(fl validator.FieldLevel) bool {
	endpoints := SplitEndpoints(fl.Field().String())
	if len(endpoints) == 0 {
		return false
	}
	for _, ep := range endpoints {
		if validate.Var(ep, "hostname_port") != nil {
			return false
		}
	}
	return true
}

// ValidateEndpoints checks a comma separated list of host:port endpoints.
func ValidateEndpoints(s string) error {
	return validate.Var(s, "required,endpoint_list")
}

// SplitEndpoints splits a comma separated endpoint list, dropping blanks.
func SplitEndpoints(s string) []string {
	var out []string
	for _, ep := range strings.Split(s, ",") {
		if ep = strings.TrimSpace(ep); ep != "" {
			out = append(out, ep)
		}
	}
	return out
}

// Validate checks any struct of this package against its tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// InvalidSpecError is returned when a ServiceConfig is rejected.
type InvalidSpecError struct {
	Service string
	Err     error
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid service spec %q: %v", e.Service, e.Err)
}

func (e *InvalidSpecError) Unwrap() error {
	return e.Err
}

// ServiceConfig is the input to NewServiceSpec.
type ServiceConfig struct {
	// Name is the service identity and its discovery name.
	Name string `validate:"required,resource_name"`
	// Image is the container image reference. It also names the log group
	// and the logical database.
	Image string `validate:"required,image_ref"`
	// Ports are bound container=host over TCP, in order. May be empty.
	Ports []int `validate:"unique,dive,min=1,max=65535"`
	// Database is the owning database, if any.
	Database *DatabaseHandle
	// Env is extra configuration. It overrides every derived key.
	Env map[string]token.Value
}

// ServiceSpec is an immutable, validated service description.
type ServiceSpec struct {
	name     string
	image    string
	ports    []int
	database *DatabaseHandle
	env      map[string]token.Value
}

// NewServiceSpec validates cfg and returns an immutable ServiceSpec.
func NewServiceSpec(cfg ServiceConfig) (ServiceSpec, error) {
	if err := validate.Struct(cfg); err != nil {
		return ServiceSpec{}, &InvalidSpecError{Service: cfg.Name, Err: err}
	}
	for key := range cfg.Env {
		if err := validate.Var(key, "env_key"); err != nil {
			return ServiceSpec{}, &InvalidSpecError{
				Service: cfg.Name,
				Err:     fmt.Errorf("environment key %q: %w", key, err),
			}
		}
	}
	if cfg.Database != nil && cfg.Database.Address.IsZero() {
		return ServiceSpec{}, &InvalidSpecError{Service: cfg.Name, Err: errors.New("database handle has no address")}
	}
	if cfg.Database != nil && cfg.Database.DatabaseName != cfg.Image+"-db" {
		return ServiceSpec{}, &InvalidSpecError{
			Service: cfg.Name,
			Err:     fmt.Errorf("database %s holds %q, expected %q", cfg.Database.Address, cfg.Database.DatabaseName, cfg.Image+"-db"),
		}
	}

	spec := ServiceSpec{
		name:  cfg.Name,
		image: cfg.Image,
		ports: slices.Clone(cfg.Ports),
		env:   maps.Clone(cfg.Env),
	}
	if cfg.Database != nil {
		db := *cfg.Database
		spec.database = &db
	}
	return spec, nil
}

// Name returns the service identity.
func (s ServiceSpec) Name() string { return s.name }

// Image returns the container image reference.
func (s ServiceSpec) Image() string { return s.image }

// Ports returns a copy of the exposed ports.
func (s ServiceSpec) Ports() []int { return slices.Clone(s.ports) }

// Database returns the owning database, if any.
func (s ServiceSpec) Database() (DatabaseHandle, bool) {
	if s.database == nil {
		return DatabaseHandle{}, false
	}
	return *s.database, true
}

// Env returns a copy of the extra configuration.
func (s ServiceSpec) Env() map[string]token.Value { return maps.Clone(s.env) }

// DatabaseName returns the logical database name derived from the image.
func (s ServiceSpec) DatabaseName() string { return s.image + "-db" }

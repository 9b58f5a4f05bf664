package discovery

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pyneda/wsdlwizard/pkg/http_utils"
	"github.com/pyneda/wsdlwizard/pkg/ratelimit"
	"github.com/pyneda/wsdlwizard/pkg/wsdl"
	"github.com/spf13/viper"
)

const (
	DefaultConcurrency = 10
	DefaultTimeout     = 10 * time.Second
)

// Options configures a discovery run. RequireOK restricts content inspection to
// probe responses with status 200.
type Options struct {
	Concurrency  int           `json:"concurrency" validate:"min=1,max=1000"`
	Timeout      time.Duration `json:"timeout"`
	MessageLimit int           `json:"message_limit" validate:"min=0"`
	MaxBodySize  int64         `json:"max_body_size" validate:"min=0"`
	RequireOK    bool          `json:"require_ok"`
	Strategy     StrategyKind  `json:"strategy" validate:"omitempty,oneof=direct session"`
	RateLimit    float64       `json:"rate_limit" validate:"min=0"`
	RateBurst    int           `json:"rate_burst" validate:"min=0"`
	WorkspaceID  uint          `json:"workspace_id"`

	Client  *http.Client          `json:"-" validate:"-"`
	Limiter ratelimit.RateLimiter `json:"-" validate:"-"`
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Concurrency:  DefaultConcurrency,
		Timeout:      DefaultTimeout,
		MessageLimit: wsdl.DefaultMessageLimit,
		MaxBodySize:  http_utils.DefaultMaxBodySize,
		Strategy:     StrategyDirect,
		RateBurst:    1,
	}
}

// OptionsFromConfig reads the wsdl.* configuration keys
func OptionsFromConfig() Options {
	options := Options{
		Concurrency:  viper.GetInt("wsdl.concurrency"),
		Timeout:      time.Duration(viper.GetInt("wsdl.timeout")) * time.Second,
		MessageLimit: viper.GetInt("wsdl.message_limit"),
		MaxBodySize:  viper.GetInt64("wsdl.max_body_size"),
		RequireOK:    viper.GetBool("wsdl.require_ok"),
		Strategy:     StrategyDirect,
		RateLimit:    viper.GetFloat64("wsdl.rate_limit.rps"),
		RateBurst:    viper.GetInt("wsdl.rate_limit.burst"),
		WorkspaceID:  viper.GetUint("workspace.id"),
	}
	if viper.GetBool("wsdl.session") {
		options.Strategy = StrategySession
	}
	return options
}

// Validate fills unset values with defaults and checks the result
func (o *Options) Validate() error {
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MessageLimit == 0 {
		o.MessageLimit = wsdl.DefaultMessageLimit
	}
	if o.MaxBodySize == 0 {
		o.MaxBodySize = http_utils.DefaultMaxBodySize
	}
	if o.Strategy == "" {
		o.Strategy = StrategyDirect
	}

	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid discovery options: %w", err)
	}
	if o.Limiter == nil {
		o.Limiter = ratelimit.New(o.RateLimit, o.RateBurst)
	}
	return nil
}

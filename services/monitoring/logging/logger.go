package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"log/syslog"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logrusSyslog "github.com/sirupsen/logrus/hooks/syslog"
)

// request and response body keys that never reach the logs
var redactedKeys = []string{"password", "client_secret", "access_token", "token"}

// bodies at or over this size are not logged
const maxLoggedBody = 250

type Logger struct {
	*logrus.Logger
}

// responseBodyWriter keeps at most maxLoggedBody bytes of the response.
type responseBodyWriter struct {
	gin.ResponseWriter
	body      *bytes.Buffer
	truncated bool
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if room := maxLoggedBody - r.body.Len(); room > 0 {
		if len(b) > room {
			r.body.Write(b[:room])
			r.truncated = true
		} else {
			r.body.Write(b)
		}
	} else if len(b) > 0 {
		r.truncated = true
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) WriteString(s string) (int, error) {
	return r.Write([]byte(s))
}

func NewLogger(c *utils.Config) *Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{PrettyPrint: c.Env == "development"})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if c.Papertrail != "" {
		hook, err := logrusSyslog.NewSyslogHook("udp", c.Papertrail, syslog.LOG_INFO, c.PapertrailAppName)
		if err != nil {
			log.Error("Unable to connect to Papertrail")
		} else {
			log.Hooks.Add(hook)
		}
	}

	return &Logger{
		log,
	}
}

// NewLoggerWithOutput is used by tests and tools that want logs in a buffer.
func NewLoggerWithOutput(w io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.JSONFormatter{})
	return &Logger{log}
}

func (l *Logger) LoggingMiddleWare() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = c.GetRawData()
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		// Capture the start of the response body, only error responses are logged
		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   statusCode,
			"duration": duration,
		}

		// Only small bodies are logged, large payloads pollute the logs
		if len(requestBody) > 0 && len(requestBody) < maxLoggedBody {
			var requestJson map[string]interface{}
			if err := json.Unmarshal(requestBody, &requestJson); err != nil {
				l.Log(logrus.DebugLevel, "error unmarshalling requestBody, request may not be JSON")
			} else {
				fields["request"] = redact(requestJson)
			}
		}

		if statusCode >= 400 && !w.truncated && w.body.Len() > 0 {
			var responseJson map[string]interface{}
			if err := json.Unmarshal(w.body.Bytes(), &responseJson); err != nil {
				l.Log(logrus.DebugLevel, "error unmarshalling responseBody, response may not be JSON")
			} else {
				fields["response"] = redact(responseJson)
			}
		}

		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		l.WithFields(fields).Info("Request-Response")
	}
}

func redact(body map[string]interface{}) map[string]interface{} {
	for _, k := range redactedKeys {
		if _, ok := body[k]; ok {
			body[k] = "****"
		}
	}
	return body
}

package fiberlog

import "github.com/sirupsen/logrus"

// Config of the access log. A nil Logger logs through the logrus standard logger.
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// RequestTags identify a request without its payload.
var RequestTags = []string{
	TagMethod,
	TagPath,
	TagRoute,
	TagStatus,
	TagLatency,
	RequestID,
}

// PayloadTags add the request body and the body of failed responses.
var PayloadTags = []string{
	TagBody,
	TagResBody,
}

var ConfigDefault = Config{
	Tags: RequestTags,
}

// WithPayload returns the config extended with PayloadTags.
func (c Config) WithPayload() Config {
	tags := make([]string, 0, len(c.Tags)+len(PayloadTags))
	tags = append(tags, c.Tags...)
	tags = append(tags, PayloadTags...)
	c.Tags = tags
	return c
}

package commands

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/sendlater/pkg/mailer"
	"github.com/dmitrymomot/sendlater/pkg/trigger"
)

// jobFile is the YAML form of a job and its schedule:
//
//	from: me@example.com
//	to: a@example.com, b@example.com
//	subject: Nightly log
//	body: |
//	  Log attached.
//	attach: /var/log/app.log
//	every: 1h
type jobFile struct {
	ID       string `yaml:"id"`
	From     string `yaml:"from"`
	To       toList `yaml:"to"`
	Subject  string `yaml:"subject"`
	Body     string `yaml:"body"`
	BodyFile string `yaml:"body_file"`
	Attach   string `yaml:"attach"`
	Markdown bool   `yaml:"markdown"`
	Timezone string `yaml:"timezone"`

	trigger.Spec `yaml:",inline"`
}

// toList accepts either a comma separated string or a YAML sequence.
type toList []string

func (l *toList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*l = mailer.Recipients(n.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := n.Decode(&items); err != nil {
			return err
		}
		*l = mailer.Recipients(strings.Join(items, ","))
		return nil
	default:
		return fmt.Errorf("line %d: to must be a string or a list", n.Line)
	}
}

// loadJobFile reads and decodes path. Unknown keys are rejected.
func loadJobFile(path string) (jobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return jobFile{}, fmt.Errorf("job file: %w", err)
	}

	var jf jobFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&jf); err != nil {
		return jobFile{}, fmt.Errorf("job file %s: %w", path, err)
	}

	if jf.BodyFile != "" && jf.Body == "" {
		body, err := os.ReadFile(jf.BodyFile)
		if err != nil {
			return jobFile{}, fmt.Errorf("job file %s: body_file: %w", path, err)
		}
		jf.Body = string(body)
	}
	return jf, nil
}

// job converts the file into a mailer.Job.
func (jf jobFile) job() mailer.Job {
	return mailer.Job{
		ID:             jf.ID,
		Sender:         jf.From,
		Recipients:     []string(jf.To),
		Subject:        jf.Subject,
		Body:           jf.Body,
		AttachmentPath: jf.Attach,
		Markdown:       jf.Markdown,
	}
}

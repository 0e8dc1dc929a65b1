/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/


package notification

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fieldsync/fieldsync/internal/request"
	"github.com/fieldsync/fieldsync/model"
)

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

// SlackNotifier posts records the central database refused for good to a Slack webhook.
type SlackNotifier struct {
	webhookURL  string
	projectName string
	client      *http.Client
}

func NewSlackNotifier(webhookURL, projectName string, client *http.Client) *SlackNotifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SlackNotifier{webhookURL: webhookURL, projectName: projectName, client: client}
}

// NotifyRecordFailure reports an envelope that was archived without reaching the central database.
func (s *SlackNotifier) NotifyRecordFailure(ctx context.Context, envelope model.RecordEnvelope, cause error) error {
	message := recordFailureMessage(s.projectName, envelope, cause, time.Now())
	if _, err := request.PostJSON(ctx, s.client, s.webhookURL, message); err != nil {
		logrus.WithField("id_record", envelope.ID).Errorf("slack notification failed: %v", err)
		return err
	}
	return nil
}

func recordFailureMessage(projectName string, envelope model.RecordEnvelope, cause error, at time.Time) slackMessage {
	return slackMessage{Blocks: []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: fmt.Sprintf("Sync record rejected on %s", projectName), Emoji: true},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: fmt.Sprintf("*Record:*\n%s", envelope.ID)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Table:*\n%s %s", envelope.Action, envelope.TableName)},
			},
		},
		{
			Type:   "section",
			Fields: []slackText{{Type: "mrkdwn", Text: fmt.Sprintf("*Error:*\n%v", cause)}},
		},
		{
			Type:   "section",
			Fields: []slackText{{Type: "mrkdwn", Text: fmt.Sprintf("*Time:*\n%v", at.Format(time.RFC822))}},
		},
	}}
}

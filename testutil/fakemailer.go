// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"sync"

	"github.com/danielhkuo/allotdesk/mailer"
)

// FakeMailer records sent messages. Err fails every send; FailFor fails
// sends to specific addresses. CheckErr is returned from Check.
type FakeMailer struct {
	mu       sync.Mutex
	Sent     []mailer.Message
	Err      error
	FailFor  map[string]error
	CheckErr error
}

var _ mailer.Mailer = (*FakeMailer)(nil)

func (f *FakeMailer) Check() error { return f.CheckErr }

func (f *FakeMailer) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	if err, ok := f.FailFor[msg.To]; ok {
		return err
	}
	f.Sent = append(f.Sent, msg)
	return nil
}

// SentTo lists recipients in send order
func (f *FakeMailer) SentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.Sent))
	for i, m := range f.Sent {
		out[i] = m.To
	}
	return out
}

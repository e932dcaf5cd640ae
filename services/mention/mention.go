// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package mention

import (
	"context"
	"fmt"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/models/subscription"
	"code.mojo.dev/mojo/modules/json"
	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/references"
	"code.mojo.dev/mojo/modules/util"

	"github.com/google/uuid"
)

// Payload is the body of a mention webhook. Members are either listed in
// MemberIDs or referenced as "@<id>" in Text, both may be given.
type Payload struct {
	SubscribableID int64   `json:"subscribable_id"`
	MemberIDs      []int64 `json:"member_ids,omitempty"`
	Text           string  `json:"text,omitempty"`
	// Delivery identifies a delivery attempt, one is generated when empty
	Delivery string `json:"delivery,omitempty"`
}

// Result tells which members got a new one-shot subscription
type Result struct {
	Delivery       string  `json:"delivery"`
	SubscribableID int64   `json:"subscribable_id"`
	Processed      int     `json:"processed"`
	Notified       []int64 `json:"notified"`
}

// ParsePayload decodes and validates a webhook body
func ParsePayload(body []byte) (*Payload, error) {
	p := new(Payload)
	if err := json.Unmarshal(body, p); err != nil {
		return nil, util.NewInvalidArgumentErrorf("malformed mention payload: %v", err)
	}
	if p.SubscribableID <= 0 {
		return nil, util.NewInvalidArgumentErrorf("mention payload has no subscribable_id")
	}
	if p.Delivery != "" {
		if _, err := uuid.Parse(p.Delivery); err != nil {
			return nil, util.NewInvalidArgumentErrorf("mention payload delivery %q is not a UUID", p.Delivery)
		}
	}
	return p, nil
}

// Members returns the distinct members of the payload, listed ones first
func (p *Payload) Members() []int64 {
	ids := append([]int64{}, p.MemberIDs...)
	ids = append(ids, references.FindAllMentionIDs(p.Text)...)
	return util.UniqueIDs(ids)
}

// HandlePayload mentions every member of the webhook body on its subscribable.
// Delivering the same body twice leaves the same rows behind.
func HandlePayload(ctx context.Context, body []byte) (*Result, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	return Notify(ctx, p)
}

// Notify mentions the members of p in one transaction
func Notify(ctx context.Context, p *Payload) (*Result, error) {
	members := p.Members()
	res := &Result{
		Delivery:       p.Delivery,
		SubscribableID: p.SubscribableID,
		Processed:      len(members),
		Notified:       []int64{},
	}
	if res.Delivery == "" {
		res.Delivery = uuid.NewString()
	}
	err := db.WithTx(ctx, func(ctx context.Context) error {
		for _, memberID := range members {
			created, err := subscription.Mention(ctx, p.SubscribableID, memberID)
			if err != nil {
				return fmt.Errorf("mention member %d: %w", memberID, err)
			}
			if created {
				res.Notified = append(res.Notified, memberID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("Mention delivery %s on %d: %d members, %d notified", res.Delivery, p.SubscribableID, res.Processed, len(res.Notified))
	return res, nil
}

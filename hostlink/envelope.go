// Package hostlink carries corkboard bridge traffic between a canvas process
// and a privileged host process over a websocket.
//
// Every message is an [Envelope]: a channel name from the corkboard Channel*
// constants and its positional arguments. Canvas-to-host requests carry the
// request arguments; host-to-canvas events carry a single string argument
// holding the event payload. Messages on one connection arrive in order.
package hostlink

import (
	"encoding/json"
	"fmt"
)

// Path is the HTTP path the server upgrades to a websocket.
const Path = "/bridge"

// Envelope is the wire form of one bridge message.
type Envelope struct {
	Channel string            `json:"channel"`
	Args    []json.RawMessage `json:"args,omitempty"`
}

// NewEnvelope encodes args as the positional arguments of a message on
// channel.
func NewEnvelope(channel string, args ...any) (Envelope, error) {
	env := Envelope{Channel: channel}
	for i, a := range args {
		raw, err := json.Marshal(a)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode %s arg %d: %w", channel, i, err)
		}
		env.Args = append(env.Args, raw)
	}
	return env, nil
}

// Decode unmarshals the leading arguments into dst in order.
func (e Envelope) Decode(dst ...any) error {
	if len(e.Args) < len(dst) {
		return fmt.Errorf("%s: want %d args, got %d", e.Channel, len(dst), len(e.Args))
	}
	for i, d := range dst {
		if err := json.Unmarshal(e.Args[i], d); err != nil {
			return fmt.Errorf("%s arg %d: %w", e.Channel, i, err)
		}
	}
	return nil
}

// eventEnvelope wraps an inbound event payload as a single string argument.
func eventEnvelope(channel string, payload []byte) (Envelope, error) {
	return NewEnvelope(channel, string(payload))
}

// eventPayload extracts the payload of an inbound event envelope.
func eventPayload(env Envelope) ([]byte, error) {
	var s string
	if err := env.Decode(&s); err != nil {
		return nil, err
	}
	return []byte(s), nil
}

package mail

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/types"
)

type stubSender struct {
	sent []*gomail.Msg
	err  error
}

func (s *stubSender) DialAndSendWithContext(_ context.Context, messages ...*gomail.Msg) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, messages...)
	return nil
}

func draft() *types.EmailDraft {
	return &types.EmailDraft{
		Recipient: "jane@example.com",
		Subject:   "Application Update - Go Developer at Acme",
		HTMLBody:  "<html><body><h2>Congratulations!</h2><p>Dear Jane,</p><ul><li>A) go</li><li>B) run</li></ul><br><p>Best regards,<br>HR Team</p></body></html>",
	}
}

func TestSendBuildsMessage(t *testing.T) {
	stub := &stubSender{}
	d := &Dispatcher{client: stub, from: "hr@acme.test", logger: zap.NewNop()}

	require.NoError(t, d.Send(context.Background(), draft()))
	require.Len(t, stub.sent, 1)

	msg := stub.sent[0]

	recipients, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"jane@example.com"}, recipients)
	assert.Equal(t, []string{"Application Update - Go Developer at Acme"}, msg.GetGenHeader(gomail.HeaderSubject))
	assert.Len(t, msg.GetFromString(), 1)
	assert.Contains(t, msg.GetFromString()[0], "hr@acme.test")

	plain, err := PlainText(draft().HTMLBody)
	require.NoError(t, err)

	bodies := map[gomail.ContentType]string{}
	for _, part := range msg.GetParts() {
		content, err := part.GetContent()
		require.NoError(t, err)
		bodies[part.GetContentType()] = string(content)
	}

	require.Len(t, bodies, 2)
	assert.Equal(t, plain, bodies[gomail.TypeTextPlain])
	assert.Equal(t, draft().HTMLBody, bodies[gomail.TypeTextHTML])
}

func TestSendWrapsTransportErrors(t *testing.T) {
	d := &Dispatcher{client: &stubSender{err: errors.New("535 authentication failed")}, from: "hr@acme.test", logger: zap.NewNop()}

	err := d.Send(context.Background(), draft())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDelivery))
	assert.Contains(t, err.Error(), "535 authentication failed")
	assert.Contains(t, err.Error(), "jane@example.com")
}

func TestSendRejectsBadSender(t *testing.T) {
	stub := &stubSender{}
	d := &Dispatcher{client: stub, from: "not an address", logger: zap.NewNop()}

	err := d.Send(context.Background(), draft())
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Empty(t, stub.sent)
}

func TestSendUnreachableServer(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	d, err := New(Config{
		Host:     "127.0.0.1",
		Port:     port,
		Username: "hr@acme.test",
		Password: "secret",
		Timeout:  2 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "hr@acme.test", d.from)

	err = d.Send(context.Background(), draft())
	assert.ErrorIs(t, err, ErrDelivery)
}

func TestPlainText(t *testing.T) {
	got, err := PlainText(draft().HTMLBody)
	require.NoError(t, err)

	assert.Equal(t, "Congratulations!\nDear Jane,\n- A) go\n- B) run\nBest regards,\nHR Team", got)
}

func TestNewRequiresHost(t *testing.T) {
	_, err := New(Config{Port: 587}, nil)
	assert.Error(t, err)
}

package mailxresend_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/cheapalerts/pkg/errx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxresend"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmails struct {
	params *resend.SendEmailRequest
	err    error
}

func (f *fakeEmails) SendWithContext(_ context.Context, p *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.params = p
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "re_1"}, nil
}

func testEmail(t *testing.T) *mailx.Email {
	t.Helper()
	from, err := mailx.ParseAddress("alerts@example.com")
	require.NoError(t, err)
	to, err := mailx.ParseAddress("6125550111@vtext.com")
	require.NoError(t, err)
	env, err := mailx.NewEnvelope(from, to)
	require.NoError(t, err)
	e := mailx.NewEmail(env, time.Now(), []byte("delivery en route"))
	e.Subject = "pizza"
	return e
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := mailxresend.New("")
	assert.True(t, errx.IsCode(err, mailxresend.ErrMissingAPIKey))

	tr, err := mailxresend.New("re_test")
	require.NoError(t, err)
	assert.Equal(t, "resend", tr.Name())
}

func TestTransport_MapsEmailToRequest(t *testing.T) {
	fake := &fakeEmails{}
	email := testEmail(t)

	require.NoError(t, mailxresend.NewWithAPI(fake).Send(context.Background(), email))

	require.NotNil(t, fake.params)
	assert.Equal(t, "alerts@example.com", fake.params.From)
	assert.Equal(t, []string{"6125550111@vtext.com"}, fake.params.To)
	assert.Equal(t, "pizza", fake.params.Subject)
	assert.Equal(t, "delivery en route", fake.params.Text)
	assert.Equal(t, email.MessageID(), fake.params.Headers["Message-ID"])
}

func TestTransport_EmptySubjectUsesDefault(t *testing.T) {
	fake := &fakeEmails{}
	email := testEmail(t)
	email.Subject = ""

	require.NoError(t, mailxresend.NewWithAPI(fake).Send(context.Background(), email))
	assert.Equal(t, mailxresend.DefaultSubject, fake.params.Subject)
}

func TestTransport_WrapsFailure(t *testing.T) {
	tr := mailxresend.NewWithAPI(&fakeEmails{err: errors.New("401 unauthorized")})

	err := tr.Send(context.Background(), testEmail(t))
	assert.True(t, errx.IsCode(err, mailxresend.ErrSendFailed))
	assert.True(t, mailxresend.Errors().Owns(err))
}

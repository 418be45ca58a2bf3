package mailer

import "gopkg.in/gomail.v2"

// Mailer sends the transactional mail the auth flows need. Sending is
// best-effort everywhere it is called; a failed mail never fails the flow.
type Mailer interface {
	SendVerificationEmail(to, link string) error
	SendPasswordResetEmail(to, link string) error
}

// SMTP sends through a real SMTP relay.
type SMTP struct {
	Host string
	Port int
	From string
	Pass string
}

func (m *SMTP) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.Host, m.Port, m.From, m.Pass)
	return d.DialAndSend(msg)
}

func (m *SMTP) SendVerificationEmail(to, link string) error {
	return m.send(to, "تأكيد البريد الإلكتروني - سوق البلد",
		"أهلاً بك في سوق البلد!\n\nلتأكيد بريدك الإلكتروني افتح الرابط التالي:\n"+link+"\n\nإذا لم تقم بإنشاء حساب تجاهل هذه الرسالة.")
}

func (m *SMTP) SendPasswordResetEmail(to, link string) error {
	return m.send(to, "استعادة كلمة المرور - سوق البلد",
		"لتعيين كلمة مرور جديدة افتح الرابط التالي:\n"+link+"\n\nالرابط صالح لمدة ساعة واحدة.")
}

// Noop is used when SMTP is not configured (local development).
type Noop struct{}

func (Noop) SendVerificationEmail(string, string) error  { return nil }
func (Noop) SendPasswordResetEmail(string, string) error { return nil }

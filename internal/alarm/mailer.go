package alarm

import (
	"tinyfeed/internal/bus"
	"tinyfeed/internal/config"
	"tinyfeed/internal/logging"

	"gopkg.in/gomail.v2"
)

// Mailer sends alarms over SMTP with implicit TLS disabled and basic
// auth, matching the feeder's plaintext-then-STARTTLS mail setup.
type Mailer struct {
	from, to, smtp     string
	port               int
	username, password string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		from:     cfg.From,
		to:       cfg.To,
		smtp:     cfg.SMTP,
		port:     int(cfg.Port),
		username: cfg.Username,
		password: cfg.Password,
	}
}

// Send delivers one alarm as a plain-text email.
func (m *Mailer) Send(a bus.Alarm) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", a.Subject)
	msg.SetBody("text/plain", a.Body)

	dialer := gomail.NewDialer(m.smtp, m.port, m.username, m.password)
	dialer.SSL = false

	return dialer.DialAndSend(msg)
}

// Dispatcher drains an AlarmBus and mails every alarm it carries. The
// balance gauge is pushed independently, on every sample taken, not
// only when an alarm fires; see chainsubmit's balance sampler.
type Dispatcher struct {
	alarms *bus.AlarmBus
	mailer *Mailer
}

func NewDispatcher(alarms *bus.AlarmBus, mailer *Mailer) *Dispatcher {
	return &Dispatcher{alarms: alarms, mailer: mailer}
}

// Run mails every alarm received until the bus is closed.
func (d *Dispatcher) Run() {
	log := logging.Default().Component("alarm")
	for a := range d.alarms.Recv() {
		if a.MessageID == 0 {
			a.MessageID = claimMessageID()
		}
		if d.mailer == nil {
			continue
		}
		if err := d.mailer.Send(a); err != nil {
			log.Error("failed to send alarm email", "subject", a.Subject, "err", err)
		}
	}
}

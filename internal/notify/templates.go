package notify

import (
	"fmt"
	"html"
	"unicode/utf8"

	"github.com/reyescuts/booking-api/internal/httperr"
)

// Email kinds the dispatcher knows how to render.
const (
	TypeShopNotification     = "shop_notification"
	TypeCustomerConfirmation = "customer_confirmation"
	TypeReminder             = "reminder"
	TypeContactNotification  = "contact_notification"
	TypeContactReply         = "contact_reply"
)

func IsKnownType(t string) bool {
	switch t {
	case TypeShopNotification, TypeCustomerConfirmation, TypeReminder,
		TypeContactNotification, TypeContactReply:
		return true
	}
	return false
}

// EmailRequest carries everything a template may interpolate. All fields
// arrive untrusted from the client and are escaped and capped here, right
// before they touch HTML.
type EmailRequest struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Barber  string `json:"barber"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// esc truncates then HTML-escapes one interpolated value. The cut backs
// up to a rune boundary so accented content never yields invalid UTF-8.
func esc(s string, max int) string {
	if len(s) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return html.EscapeString(s)
}

func (r EmailRequest) spanish() bool {
	return r.Source == "es"
}

// BuildEmail renders subject and HTML body for the request. shopName is
// the display name used in customer-facing templates.
func BuildEmail(r EmailRequest, shopName string) (subject, body string, err error) {
	name := esc(r.Name, 100)
	phone := esc(r.Phone, 20)
	email := esc(r.Email, 100)
	barber := esc(r.Barber, 100)
	service := esc(r.Service, 100)
	date := esc(r.Date, 20)
	timeStr := esc(r.Time, 20)
	notes := esc(r.Notes, 1000)
	message := esc(r.Message, 2000)
	shop := html.EscapeString(shopName)

	switch r.Type {
	case TypeShopNotification:
		subject = fmt.Sprintf("New Appointment: %s - %s", name, date)
		body = fmt.Sprintf(`<h2>New appointment booked</h2>
<p><b>Name:</b> %s<br>
<b>Phone:</b> %s<br>
<b>Email:</b> %s<br>
<b>Barber:</b> %s<br>
<b>Service:</b> %s<br>
<b>Date:</b> %s<br>
<b>Time:</b> %s<br>
<b>Notes:</b> %s</p>`,
			name, phone, email, barber, service, date, timeStr, notes)

	case TypeCustomerConfirmation:
		if r.spanish() {
			subject = fmt.Sprintf("Cita confirmada - %s", shop)
			body = fmt.Sprintf(`<h2>¡Gracias, %s!</h2>
<p>Tu cita está confirmada:</p>
<p><b>Barbero:</b> %s<br>
<b>Servicio:</b> %s<br>
<b>Fecha:</b> %s<br>
<b>Hora:</b> %s</p>
<p>Nos vemos pronto en %s.</p>`,
				name, barber, service, date, timeStr, shop)
		} else {
			subject = fmt.Sprintf("Appointment Confirmed - %s", shop)
			body = fmt.Sprintf(`<h2>Thank you, %s!</h2>
<p>Your appointment is confirmed:</p>
<p><b>Barber:</b> %s<br>
<b>Service:</b> %s<br>
<b>Date:</b> %s<br>
<b>Time:</b> %s</p>
<p>See you soon at %s.</p>`,
				name, barber, service, date, timeStr, shop)
		}

	case TypeReminder:
		if r.spanish() {
			subject = fmt.Sprintf("Recordatorio de cita - %s", shop)
			body = fmt.Sprintf(`<h2>Hola %s,</h2>
<p>Te recordamos tu cita de hoy:</p>
<p><b>Barbero:</b> %s<br>
<b>Servicio:</b> %s<br>
<b>Hora:</b> %s</p>
<p>¡Te esperamos en %s!</p>`,
				name, barber, service, timeStr, shop)
		} else {
			subject = fmt.Sprintf("Appointment Reminder - %s", shop)
			body = fmt.Sprintf(`<h2>Hi %s,</h2>
<p>This is a reminder for your appointment today:</p>
<p><b>Barber:</b> %s<br>
<b>Service:</b> %s<br>
<b>Time:</b> %s</p>
<p>See you soon at %s!</p>`,
				name, barber, service, timeStr, shop)
		}

	case TypeContactNotification:
		subject = fmt.Sprintf("New Contact Message from %s", name)
		body = fmt.Sprintf(`<h2>New contact form message</h2>
<p><b>Name:</b> %s<br>
<b>Email:</b> %s<br>
<b>Phone:</b> %s</p>
<p>%s</p>`,
			name, email, phone, message)

	case TypeContactReply:
		if r.spanish() {
			subject = fmt.Sprintf("Respuesta de %s", shop)
			body = fmt.Sprintf(`<p>Hola %s,</p><p>%s</p><p>— %s</p>`,
				name, message, shop)
		} else {
			subject = fmt.Sprintf("Reply from %s", shop)
			body = fmt.Sprintf(`<p>Hi %s,</p><p>%s</p><p>— %s</p>`,
				name, message, shop)
		}

	default:
		return "", "", httperr.ErrBusiness("unknown_email_type")
	}

	return subject, body, nil
}

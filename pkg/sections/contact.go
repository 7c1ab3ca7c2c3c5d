package sections

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ContactFormProps configures the contact form section
type ContactFormProps struct {
	Title          string // default "Get in touch"
	ButtonLabel    string // default "Send"
	SuccessMessage string // default "Thanks! We'll be in touch."
	ErrorMessage   string // default "Something went wrong. Please try again."
	Action         string // default "/api/contacts"
}

// DefaultContactFormProps returns the effective defaults
func DefaultContactFormProps() ContactFormProps {
	return ContactFormProps{
		Title:          "Get in touch",
		ButtonLabel:    "Send",
		SuccessMessage: "Thanks! We'll be in touch.",
		ErrorMessage:   "Something went wrong. Please try again.",
		Action:         "/api/contacts",
	}
}

func (p ContactFormProps) withDefaults() ContactFormProps {
	d := DefaultContactFormProps()
	p.Title = orDefault(p.Title, d.Title)
	p.ButtonLabel = orDefault(p.ButtonLabel, d.ButtonLabel)
	p.SuccessMessage = orDefault(p.SuccessMessage, d.SuccessMessage)
	p.ErrorMessage = orDefault(p.ErrorMessage, d.ErrorMessage)
	p.Action = orDefault(p.Action, d.Action)
	return p
}

const contactScript = `<script>
document.querySelectorAll("form[data-contact-form]").forEach(function (form) {
  form.addEventListener("submit", function (e) {
    e.preventDefault();
    var data = new FormData(form);
    var status = form.querySelector("[data-status]");
    fetch(form.action, {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({
        email: data.get("email"),
        firstName: data.get("firstName") || undefined,
        lastName: data.get("lastName") || undefined
      })
    }).then(function (r) {
      status.textContent = r.ok ? form.dataset.success : form.dataset.error;
      if (r.ok) form.reset();
    }).catch(function () {
      status.textContent = form.dataset.error;
    });
  });
});
</script>`

// ContactForm renders the newsletter/contact form that posts to the contacts API
func ContactForm(props ContactFormProps) templ.Component {
	p := props.withDefaults()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="contact" id="contact"><h2>%s</h2>`+
				`<form method="post" action="%s" data-contact-form data-success="%s" data-error="%s">`+
				`<input type="text" name="firstName" placeholder="First name" autocomplete="given-name">`+
				`<input type="text" name="lastName" placeholder="Last name" autocomplete="family-name">`+
				`<input type="email" name="email" placeholder="Email" required autocomplete="email">`+
				`<button type="submit">%s</button><p data-status role="status"></p></form>%s</section>`,
			esc(p.Title), esc(p.Action), esc(p.SuccessMessage), esc(p.ErrorMessage), esc(p.ButtonLabel), contactScript)
		return err
	})
}

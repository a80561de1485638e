package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"olc/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig

	from := cfg.EmailSender
	password := cfg.Password

	if from == "" || password == "" {
		// Mailing is optional; without credentials every trigger is a no-op.
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Online Courses <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, cfg.SMTPHost)

	err := smtp.SendMail(cfg.SMTPHost+":"+cfg.SMTPPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Email send failed: %v", err)
		return err
	}
	return nil
}

// HTML wrapper shared by every outgoing email
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A5C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A5C; line-height: 1.6; }
			.content h2 { color: #1B3A5C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5C9DD4; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ONLINE COURSES</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; %d Online Courses. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent, time.Now().Year())
}

// --- Triggers ---
// Every trigger runs in its own goroutine; a failed send is logged inside
// SendEmail and never affects the request that fired it.

// 1. Welcome / Register
func SendWelcomeEmail(email, username string) {
	subject := "Welcome to Online Courses"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account has been created successfully.</p>
		<p>Browse the catalog, enroll in a course and start learning.</p>
	`, username)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Enrollment confirmation
func SendEnrollmentEmail(email, username, courseTitle string) {
	subject := "Enrollment confirmed: " + courseTitle
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You have enrolled in: <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Open the course and complete the first module to unlock the next one.
		</div>
	`, username, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Confirmed", body))
}

// 3. Profile update notice
func SendProfileUpdatedEmail(email, username string) {
	subject := "Profile updated"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your profile details were updated. If this was not you, contact support.</p>
	`, username)

	go SendEmail([]string{email}, subject, getEmailTemplate("Profile Updated", body))
}

// 4. Course completion / certificate
func SendCompletionEmail(email, username, courseTitle, certificateNumber string) {
	subject := "Course completed: " + courseTitle
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! You have completed every module of <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Certificate:</strong> %s
		</div>
	`, username, courseTitle, certificateNumber)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Complete!", body))
}

// 5. Due-date reminder
func SendDueDateReminderEmail(email, username, courseTitle string, dueDate time.Time, progress int) {
	subject := "Reminder: " + courseTitle + " is due soon"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p><strong>%s</strong> is due on %s and your progress is at %d%%.</p>
		<p>Finish the remaining modules before the deadline.</p>
	`, username, courseTitle, dueDate.Format("02 Jan 2006"), progress)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Due Soon", body))
}

package utils

import (
	"log"
	"time"

	"olc/config"
	"olc/database"
	"olc/models"

	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler sets up the daily due-date reminder job
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing due-date reminder scheduler...")

	c := cron.New()

	_, err := c.AddFunc(config.AppConfig.ReminderCron, func() {
		log.Println("[REMINDER-SCHEDULER] Running daily due-date check...")
		ProcessDueCourses()
	})
	if err != nil {
		log.Printf("[REMINDER-SCHEDULER] Invalid schedule %q: %v", config.AppConfig.ReminderCron, err)
		return
	}

	c.Start()
	log.Printf("[REMINDER-SCHEDULER] Reminder scheduler started with schedule %q", config.AppConfig.ReminderCron)
}

// DueReminder pairs an unfinished enrollment with its due course and the
// enrolled user.
type DueReminder struct {
	User       models.User
	Course     models.Course
	Enrollment models.Enrollment
}

// CollectDueReminders returns one entry per enrollment with progress below
// 100 in an active course whose due date falls between now and now+48h.
func CollectDueReminders(now time.Time) []DueReminder {
	db := database.Database.Db
	windowEnd := now.Add(48 * time.Hour)

	var dueCourses []models.Course
	if err := db.
		Where("status = ? AND due_date IS NOT NULL", true).
		Where("due_date BETWEEN ? AND ?", now, windowEnd).
		Find(&dueCourses).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching due courses: %v", err)
		return nil
	}

	var reminders []DueReminder
	for _, course := range dueCourses {
		var enrollments []models.Enrollment
		if err := db.
			Where("course_id = ? AND progress < ?", course.ID, 100).
			Find(&enrollments).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching enrollments for course %d: %v", course.ID, err)
			continue
		}

		for _, enrollment := range enrollments {
			var user models.User
			if err := db.Where("id = ?", enrollment.UserID).First(&user).Error; err != nil {
				log.Printf("[REMINDER-SCHEDULER] Error fetching user %d: %v", enrollment.UserID, err)
				continue
			}
			reminders = append(reminders, DueReminder{User: user, Course: course, Enrollment: enrollment})
		}
	}
	return reminders
}

// ProcessDueCourses emails every enrolled user who has not finished a course
// whose due date falls within the next 48 hours
func ProcessDueCourses() {
	reminders := CollectDueReminders(time.Now())
	log.Printf("[REMINDER-SCHEDULER] Sending %d due-date reminders", len(reminders))

	for _, reminder := range reminders {
		SendDueDateReminderEmail(
			reminder.User.Email,
			reminder.User.Username,
			reminder.Course.Title,
			*reminder.Course.DueDate,
			reminder.Enrollment.Progress,
		)
	}
}

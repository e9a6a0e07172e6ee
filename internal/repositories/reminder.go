package repositories

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"projectvote/internal/models"
	"projectvote/pkg/db/postgres"
	rdb "projectvote/pkg/db/redis"
)

const reminderSchedule = "vote_reminders"

// ScheduleReminder puts a due entry for the application into the redis
// schedule. A no-op when redis is not configured.
func ScheduleReminder(applicationID int, due time.Time) error {
	client := rdb.Client()
	if client == nil {
		return nil
	}

	return client.ZAdd(reminderSchedule,
		fmt.Sprintf("remind:%d", applicationID),
		float64(due.Unix()))
}

// RemoveReminder drops the application's schedule entry, if any. Called
// when an application concludes.
func RemoveReminder(applicationID int) {
	client := rdb.Client()
	if client == nil {
		return
	}

	if err := client.ZRem(reminderSchedule, fmt.Sprintf("remind:%d", applicationID)); err != nil {
		log.Errorf("removing reminder for application %d: %v", applicationID, err)
	}
}

// DueReminders returns every schedule entry whose due time has passed.
func DueReminders() ([]models.ReminderTask, error) {
	client := rdb.Client()
	if client == nil {
		return nil, nil
	}

	entries, err := client.ZRangeByScoreWithScores(reminderSchedule, "0", strconv.FormatInt(time.Now().Unix(), 10))
	if err != nil {
		return nil, err
	}

	var tasks []models.ReminderTask
	for _, entry := range entries {
		member, ok := entry.Member.(string)
		if !ok {
			continue
		}
		parts := strings.Split(member, ":")
		if len(parts) != 2 {
			continue
		}
		applicationID, err := strconv.Atoi(parts[1])
		if err != nil {
			log.Errorf("bad reminder member %q: %v", member, err)
			continue
		}
		tasks = append(tasks, models.ReminderTask{
			ApplicationID: applicationID,
			Member:        member,
		})
	}

	return tasks, nil
}

// RemoveReminderMember drops an exact schedule member after it has been
// handled.
func RemoveReminderMember(member string) error {
	client := rdb.Client()
	if client == nil {
		return nil
	}
	return client.ZRem(reminderSchedule, member)
}

func CreateReminderLog(applicationID, recipients int) error {
	reminder := models.VoteReminder{
		ApplicationID: applicationID,
		Recipients:    recipients,
		CreatedAt:     time.Now(),
	}

	return postgres.GetDB().Create(&reminder).Error
}

// CountReminders counts the reminder rounds already sent for an application.
func CountReminders(applicationID int) (int64, error) {
	var count int64
	err := postgres.GetDB().Model(&models.VoteReminder{}).
		Where("application_id = ?", applicationID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

package store

import (
	"encoding/json"
	"fmt"

	"campuschat/db"
	"campuschat/types"
)

// GetSettings reads the singleton settings row.
func GetSettings() (types.Settings, error) {
	var settings types.Settings
	var filterWordsJSON string
	err := db.ChatDB.QueryRow(`
		SELECT rules, daily_topic, filter_words,
		       auto_delete_group_messages, auto_delete_private_messages
		FROM settings WHERE id = 1`).Scan(
		&settings.Rules, &settings.DailyTopic, &filterWordsJSON,
		&settings.AutoDeleteGroupHours, &settings.AutoDeletePrivateHours,
	)
	if err != nil {
		return settings, fmt.Errorf("select settings: %w", err)
	}
	if err := json.Unmarshal([]byte(filterWordsJSON), &settings.FilterWords); err != nil {
		return settings, fmt.Errorf("parse filter words: %w", err)
	}
	return settings, nil
}

func UpdateRules(rules string) error {
	_, err := db.ChatDB.Exec(`UPDATE settings SET rules = ? WHERE id = 1`, rules)
	if err != nil {
		return fmt.Errorf("update rules: %w", err)
	}
	return nil
}

func UpdateDailyTopic(topic string) error {
	_, err := db.ChatDB.Exec(`UPDATE settings SET daily_topic = ? WHERE id = 1`, topic)
	if err != nil {
		return fmt.Errorf("update daily topic: %w", err)
	}
	return nil
}

func UpdateFilterWords(words []string) error {
	if words == nil {
		words = []string{}
	}
	wordsJSON, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encode filter words: %w", err)
	}
	_, err = db.ChatDB.Exec(`UPDATE settings SET filter_words = ? WHERE id = 1`, string(wordsJSON))
	if err != nil {
		return fmt.Errorf("update filter words: %w", err)
	}
	return nil
}

func UpdateAutoDelete(groupHours, privateHours int) error {
	_, err := db.ChatDB.Exec(`
		UPDATE settings
		SET auto_delete_group_messages = ?, auto_delete_private_messages = ?
		WHERE id = 1`, groupHours, privateHours)
	if err != nil {
		return fmt.Errorf("update auto delete: %w", err)
	}
	return nil
}

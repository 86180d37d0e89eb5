package i18n

var english = map[string]string{
	"greeting":                  "Hello!",
	"app.title":                 "Habits",
	"tabs.habits":               "Habits",
	"tabs.settings":             "Settings",
	"home.title":                "Let's grow good habits",
	"home.empty":                "No habits yet.\n\nPress n to create your first one.",
	"settings.title":            "Settings",
	"settings.appearance":       "Appearance",
	"settings.theme":            "Theme",
	"settings.preferences":      "Preferences",
	"settings.language":         "Language",
	"Light":                     "Light",
	"Dark":                      "Dark",
	"create.title":              "Create New Habit",
	"create.name":               "Habit Name",
	"create.name_placeholder":   "e.g., Drink water",
	"create.frequency":          "Frequency",
	"create.daily":              "Daily",
	"create.weekly":             "Weekly",
	"create.start_date":         "Start Date",
	"create.reminder":           "Reminder Time (Optional)",
	"create.select_time":        "Select a time",
	"create.save":               "Save",
	"create.error.empty_name":   "Habit name cannot be empty.",
	"create.error.title":        "Error",
	"create.error.invalid_date": "Use the format YYYY-MM-DD.",
	"create.error.invalid_time": "Use the format HH:MM.",
	"notification.title":        "Don't forget your habit!",
	"notification.body":         "It's time for: {{habitName}}",
	"habit.streak":              "{{count}} day streak",
	"habit.done_today":          "done today",
	"detail.last_completed":     "Last Completed",
	"detail.reminder":           "Reminder",
	"detail.never":              "Never",
	"detail.none":               "None",
	"status.saved":              "Saved",
	"status.storage_error":      "Storage unavailable, changes are kept until you quit",
	"status.unknown_command":    "unknown command: {{command}}",
	"help.title":                "Keyboard Shortcuts",
	"command.title":             "Command",
	"hints.create":              "enter submit | esc cancel",
	"hints.command":             "enter run | tab complete | esc back",
}

var turkish = map[string]string{
	"greeting":                  "Merhaba!",
	"app.title":                 "Alışkanlıklar",
	"tabs.habits":               "Alışkanlıklar",
	"tabs.settings":             "Ayarlar",
	"home.title":                "İyi alışkanlıklar edinelim",
	"home.empty":                "Henüz alışkanlık yok.\n\nİlkini oluşturmak için n tuşuna bas.",
	"settings.title":            "Ayarlar",
	"settings.appearance":       "Görünüm",
	"settings.theme":            "Tema",
	"settings.preferences":      "Tercihler",
	"settings.language":         "Dil",
	"Light":                     "Açık",
	"Dark":                      "Karanlık",
	"create.title":              "Yeni Alışkanlık Oluştur",
	"create.name":               "Alışkanlık Adı",
	"create.name_placeholder":   "ör., Su iç",
	"create.frequency":          "Sıklık",
	"create.daily":              "Günlük",
	"create.weekly":             "Haftalık",
	"create.start_date":         "Başlangıç Tarihi",
	"create.reminder":           "Hatırlatma Zamanı (İsteğe Bağlı)",
	"create.select_time":        "Bir zaman seç",
	"create.save":               "Kaydet",
	"create.error.empty_name":   "Alışkanlık adı boş olamaz.",
	"create.error.title":        "Hata",
	"create.error.invalid_date": "YYYY-AA-GG biçimini kullan.",
	"create.error.invalid_time": "SS:DD biçimini kullan.",
	"notification.title":        "Alışkanlığını unutma!",
	"notification.body":         "Şunun zamanı geldi: {{habitName}}",
	"habit.streak":              "{{count}} günlük seri",
	"habit.done_today":          "bugün tamamlandı",
	"detail.last_completed":     "Son Tamamlanma",
	"detail.reminder":           "Hatırlatma",
	"detail.never":              "Hiç",
	"detail.none":               "Yok",
	"status.saved":              "Kaydedildi",
	"status.storage_error":      "Depolama kullanılamıyor, değişiklikler çıkana kadar saklanır",
	"status.unknown_command":    "bilinmeyen komut: {{command}}",
	"help.title":                "Klavye Kısayolları",
	"command.title":             "Komut",
	"hints.create":              "enter kaydet | esc iptal",
	"hints.command":             "enter çalıştır | tab tamamla | esc geri",
}

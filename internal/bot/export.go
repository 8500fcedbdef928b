package bot

import (
	"fmt"
	"time"

	"github.com/example/puntosbot/internal/excel"
)

func (b *Bot) cmdExport(req *request, args []string) error {
	if !b.isAdmin(req.senderID) {
		b.reply(req.msg, "Este comando solo está disponible para el administrador.")
		return nil
	}

	users, err := b.users.TopByTotal(0)
	if err != nil {
		return fmt.Errorf("failed to load users for export: %v", err)
	}
	if len(users) == 0 {
		b.reply(req.msg, "No hay datos para exportar.")
		return nil
	}

	data, err := excel.ExportUsers(users, excel.DefaultExportConfig())
	if err != nil {
		return fmt.Errorf("failed to build export workbook: %v", err)
	}

	name := fmt.Sprintf("puntuaciones_%s.xlsx", time.Now().In(b.cfg.Location).Format("2006-01-02"))
	return b.sendDocument(req.msg.Chat.ID, name, data, "📊 Exportación de puntuaciones")
}

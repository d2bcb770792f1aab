package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
)

// practiceOrDefault carrega a configuração do consultório; com o banco
// indisponível, cai nos limites padrão só para compor mensagens.
func practiceOrDefault(db *gorm.DB) *models.Practice {
	var practice models.Practice
	if err := db.First(&practice).Error; err != nil {
		return &models.Practice{
			MinAdvanceMinutes:      60,
			MinCancelNoticeMinutes: 30,
			MaxDaysAhead:           30,
		}
	}
	return &practice
}

// mapBookingErrors converte erros de negócio do núcleo de agendamento
// em respostas HTTP. Violações de regra de horário são resultado
// esperado, não falha de sistema.
func mapBookingErrors(c *gin.Context, err error, practice *models.Practice) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Unavailable(c, "service_unavailable", "Serviço indisponível no momento. Tente novamente.")
		return
	}

	switch code {
	case httperr.CodeSlotTaken:
		httperr.Conflict(c, code, "Este horário acabou de ser reservado por outra pessoa. Escolha outro horário.")

	case httperr.CodeSlotUnavailable:
		httperr.Conflict(c, code, "Horário indisponível para esta data.")

	case httperr.CodeTooSoon:
		httperr.BadRequest(c, code, fmt.Sprintf(
			"Reservas exigem pelo menos %d minutos de antecedência.",
			practice.MinAdvanceMinutes,
		))

	case httperr.CodeTooFarAhead:
		httperr.BadRequest(c, code, fmt.Sprintf(
			"Reservas são aceitas com no máximo %d dias de antecedência.",
			practice.MaxDaysAhead,
		))

	case httperr.CodeTooLateToCancel:
		httperr.BadRequest(c, code, fmt.Sprintf(
			"Cancelamento exige pelo menos %d minutos de antecedência.",
			practice.MinCancelNoticeMinutes,
		))

	case httperr.CodeInvalidPhone:
		httperr.BadRequest(c, code, "Telefone inválido.")

	case httperr.CodeInvalidDateTime:
		httperr.BadRequest(c, code, "Data ou hora inválida.")

	case httperr.CodeBookingNotFound:
		httperr.NotFound(c, code, "Reserva não encontrada.")

	case httperr.CodeServiceNotFound:
		httperr.BadRequest(c, code, "Serviço não encontrado.")

	case httperr.CodeInvalidState, httperr.CodeInvalidStatus:
		httperr.Conflict(c, code, "Transição de status inválida.")

	default:
		httperr.BadRequest(c, code, "Pedido inválido.")
	}
}

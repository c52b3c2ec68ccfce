package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type businessInfo struct {
	status  int
	message string
}

var businessMessages = map[string]businessInfo{
	// agenda
	"time_conflict":                 {http.StatusConflict, "Conflito de horário."},
	"invalid_state":                 {http.StatusConflict, "Operação inválida para o status atual."},
	"invalid_action":                {http.StatusBadRequest, "Ação inválida."},
	"invalid_date":                  {http.StatusBadRequest, "Data inválida."},
	"invalid_date_or_time":          {http.StatusBadRequest, "Data ou hora inválida."},
	"invalid_period":                {http.StatusBadRequest, "Período inválido."},
	"invalid_year":                  {http.StatusBadRequest, "Ano inválido."},
	"invalid_month":                 {http.StatusBadRequest, "Mês inválido."},
	"invalid_weekday":               {http.StatusBadRequest, "Dia da semana inválido."},
	"invalid_working_hours":         {http.StatusBadRequest, "Horário de atendimento inválido."},
	"invalid_lunch_break":           {http.StatusBadRequest, "Intervalo de almoço inválido."},
	"too_soon":                      {http.StatusBadRequest, "Horário inválido."},
	"outside_working_hours":         {http.StatusBadRequest, "Fora do horário de atendimento."},
	"invalid_price":                 {http.StatusBadRequest, "Preço inválido."},
	"appointment_not_found":         {http.StatusNotFound, "Agendamento não encontrado."},
	"service_not_found":             {http.StatusNotFound, "Serviço não encontrado."},
	"staff_not_found":               {http.StatusNotFound, "Profissional não encontrado."},
	"client_not_found":              {http.StatusNotFound, "Cliente não encontrado."},
	"client_profile_not_found":      {http.StatusNotFound, "Perfil de cliente não encontrado."},
	"request_not_found":             {http.StatusNotFound, "Solicitação não encontrada."},
	"client_required":               {http.StatusBadRequest, "Cliente obrigatório."},
	"sporadic_client_required":      {http.StatusBadRequest, "Nome e telefone do cliente avulso são obrigatórios."},
	"event_title_required":          {http.StatusBadRequest, "Título do evento obrigatório."},
	"invalid_client_type":           {http.StatusBadRequest, "Tipo de cliente inválido."},
	"invalid_client_identification": {http.StatusUnprocessableEntity, "Identificação do cliente inconsistente."},
	"invalid_recurrence_type":       {http.StatusBadRequest, "Tipo de recorrência inválido."},
	"invalid_recurrence_end_date":   {http.StatusBadRequest, "Data final da recorrência inválida."},
	"recurrence_end_date_required":  {http.StatusBadRequest, "Data final da recorrência obrigatória."},
	"invalid_step":                  {http.StatusBadRequest, "Etapa inválida."},
	"incomplete_service_step":       {http.StatusBadRequest, "Escolha um serviço."},
	"incomplete_staff_step":         {http.StatusBadRequest, "Escolha um profissional."},
	"incomplete_slot_step":          {http.StatusBadRequest, "Escolha data e horário."},

	// pagamentos
	"pix_key_not_configured":      {http.StatusUnprocessableEntity, "Nenhuma chave PIX configurada para o recebedor."},
	"pix_merchant_not_configured": {http.StatusUnprocessableEntity, "Nome ou cidade do recebedor não configurados."},
	"pix_field_too_long":          {http.StatusUnprocessableEntity, "Campo do PIX excede o tamanho permitido."},
	"invalid_amount":              {http.StatusBadRequest, "Valor inválido."},
	"invalid_payment_status":      {http.StatusBadRequest, "Status de pagamento inválido."},
	"payment_not_found":           {http.StatusNotFound, "Pagamento não encontrado."},
	"already_paid":                {http.StatusConflict, "Pagamento já realizado."},
	"payment_already_issued":      {http.StatusConflict, "Já existe uma cobrança em aberto para este agendamento."},
	"duplicate_txid":              {http.StatusConflict, "Identificador de transação duplicado."},
	"subscription_not_found":      {http.StatusNotFound, "Assinatura não encontrada."},
	"plan_name_required":          {http.StatusBadRequest, "Nome do plano obrigatório."},
	"gateway_disabled":            {http.StatusServiceUnavailable, "Integração de pagamento desativada."},
	"gateway_already_registered":  {http.StatusConflict, "Pagamento já enviado ao gateway."},
	"gateway_not_registered":      {http.StatusConflict, "Pagamento não enviado ao gateway."},
}

// Respond writes err as the JSON error body. Business errors map to their
// status and message; anything else is logged and reported as fallbackCode.
func Respond(c *gin.Context, err error, fallbackCode string) {
	if code := CodeOf(err); code != "" {
		info, ok := businessMessages[code]
		if !ok {
			info = businessInfo{http.StatusBadRequest, "Requisição inválida."}
		}
		Write(c, info.status, code, info.message)
		return
	}

	if IsExclusionConflict(err) {
		info := businessMessages["time_conflict"]
		Write(c, info.status, "time_conflict", info.message)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	slog.Error("request failed",
		"path", c.FullPath(),
		"code", fallbackCode,
		"error", err,
	)
	Internal(c, fallbackCode, "Erro interno.")
}
